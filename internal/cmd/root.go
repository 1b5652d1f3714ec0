package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vectionlab/vection/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "vection",
	Short: "Cybersickness experiment protocol runner",
	Long: `Vection runs a fixed cybersickness study protocol: a mindfulness
baseline followed by rest and task blocks, emitting timestamped
synchronization markers at every phase boundary and on participant
sickness reports.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/vection/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/vection")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VECTION")
	// Replace dots with underscores for nested keys in env vars
	// e.g., VECTION_PROTOCOL_MINDFULNESS_SECONDS for protocol.mindfulness_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
