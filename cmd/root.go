package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kennt44/teachme/internal/config"
	"github.com/kennt44/teachme/internal/tutor"
)

var rootCmd = &cobra.Command{
	Use:   "teachme",
	Short: "Language practice in your terminal",
	Long:  "TeachMe is a terminal client for a language-tutor server: flashcard drills with spoken-answer scoring.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Tutor server base URL (overrides TEACHME_SERVER env var)")

	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig merges the environment config with the --server flag,
// flag winning.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		cfg.Server = s
	}
	return cfg
}

// newGateway builds a backend client for one-shot CLI commands.
func newGateway(cmd *cobra.Command) tutor.Service {
	return tutor.NewClient(loadConfig(cmd).Server)
}
