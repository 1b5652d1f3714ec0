package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vectionlab/vection/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify the runner configuration",
	Long: `View or modify the runner configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/vection/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "# config file: (none - using defaults)\n")
	}

	out, err := yaml.Marshal(renderConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// renderConfig lays the configuration out in the same key structure the
// config file uses.
func renderConfig(cfg *config.Config) map[string]any {
	return map[string]any{
		"protocol": map[string]any{
			"mindfulness_seconds": cfg.Protocol.MindfulnessSeconds,
			"rest_seconds":        cfg.Protocol.RestSeconds,
			"enable_visit":        cfg.Protocol.EnableVisit,
			"enable_select":       cfg.Protocol.EnableSelect,
			"enable_manipulation": cfg.Protocol.EnableManipulation,
		},
		"sickness": map[string]any{
			"cooldown_seconds": cfg.Sickness.CooldownSeconds,
			"ack_seconds":      cfg.Sickness.AckSeconds,
		},
		"tick": map[string]any{
			"interval_ms": cfg.Tick.IntervalMs,
		},
		"markers": map[string]any{
			"file": cfg.Markers.File,
		},
		"logging": map[string]any{
			"enabled": cfg.Logging.Enabled,
			"level":   cfg.Logging.Level,
		},
		"paths": map[string]any{
			"run_dir": cfg.Paths.RunDir,
		},
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configContent := `# Vection configuration

# Protocol durations and task enables. The sequence is always
# mindfulness first, then a rest before each enabled task.
protocol:
  mindfulness_seconds: 300
  rest_seconds: 60
  enable_visit: true
  enable_select: true
  enable_manipulation: true

# Participant sickness report debounce. Cooldown locks out repeat
# reports; ack is how long the acknowledgment stays on screen.
sickness:
  cooldown_seconds: 5
  ack_seconds: 5

# Frame tick period in milliseconds.
tick:
  interval_ms: 100

# Marker output file. A bare filename lands in the run directory;
# empty records markers to the run log only.
markers:
  file: ""

logging:
  enabled: true
  level: info # debug, info, warn, error

# Run artifacts (log, markers) are stored under run_dir/<run-id>.
# Empty defaults to .vection/runs in the working directory.
paths:
  run_dir: ""
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
