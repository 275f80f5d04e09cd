package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/edugenius/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "edugenius",
	Short: "HOTS study module and quiz generator",
	Long: "EduGenius HOTS generates a study summary and a higher-order-thinking " +
		"multiple-choice quiz for a subject and topic, with Word and PDF export.",
	SilenceUsage:      true,
	PersistentPreRunE: loadDotEnv,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before anything reads the environment")
	rootCmd.PersistentFlags().String("log-mode", "", "Log format: dev or prod (overrides EDUGENIUS_LOG_MODE)")
	addTUIFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv loads the env file into the process environment. Variables
// that are already set win. A missing file is not an error.
func loadDotEnv(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadConfig resolves the --config file and the --log-mode override.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if mode, _ := cmd.Flags().GetString("log-mode"); mode != "" {
		cfg.LogMode = mode
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
