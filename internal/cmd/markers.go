package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vectionlab/vection/internal/marker"
	"github.com/vectionlab/vection/internal/util"
)

var markersCmd = &cobra.Command{
	Use:   "markers <file>",
	Short: "Pretty-print a marker file",
	Long: `Pretty-print a marker file produced by a run.

Each line shows the marker name, its absolute timestamp, and the offset
since the run's first marker. Lines that do not parse are reported but
do not stop the listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkers,
}

func init() {
	rootCmd.AddCommand(markersCmd)
}

// markerRecord is one parsed marker file line.
type markerRecord struct {
	kind marker.Kind
	name string
	at   time.Time
}

func runMarkers(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open marker file: %w", err)
	}
	defer f.Close()

	var (
		records []markerRecord
		lineNo  int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseMarkerLine(line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read marker file: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(no markers)")
		return nil
	}

	start := records[0].at
	for _, rec := range records {
		name := rec.name
		if !rec.kind.Known() {
			name += " (unknown)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%9.2fs  %-28s %s\n",
			rec.at.Sub(start).Seconds(), util.TruncateString(name, 28), rec.at.Format(time.RFC3339Nano))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d markers over %.2fs\n",
		len(records), records[len(records)-1].at.Sub(start).Seconds())
	return nil
}

// parseMarkerLine parses one "<RFC3339Nano>\t<name>" line.
func parseMarkerLine(line string) (markerRecord, error) {
	ts, name, ok := strings.Cut(line, "\t")
	if !ok {
		return markerRecord{}, fmt.Errorf("missing tab separator")
	}
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return markerRecord{}, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}
	return markerRecord{kind: marker.ParseKind(name), name: name, at: at}, nil
}
