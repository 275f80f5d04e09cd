package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/edugenius/internal/app"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/studio"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	addTUIFlags(tuiCmd)
}

func addTUIFlags(c *cobra.Command) {
	c.Flags().String("log-file", "", "Write logs to this file (logging is off otherwise)")
	c.Flags().String("out", ".", "Directory exports are saved to")
}

// runTUI builds the generator and launches the terminal front end.
func runTUI(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.Nop()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		log, err = logger.NewWithOutput(cfg.LogMode, path)
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	outDir, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	provider := llm.NewProviderFromEnv(log)
	if err := llm.ResolveConfig().Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Generation will fail until it is.")
	}

	gen := modulegen.New(provider, cfg.GeneratorConfig())
	return app.Run(app.Options{
		Workspace: studio.New(gen, log),
		Intake:    intake.New(cfg.MaxAttachmentBytes),
		OutDir:    outDir,
		Model:     provider.ModelID(),
		Context:   cmd.Context(),
	})
}
