package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/export"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/llm"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/studio"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one module headlessly and print or export it",
	Long: `Generate a study module and HOTS quiz without a front end.

The quiz is printed with its answer key (--format text), as JSON
(--format json), or written to --out as a Word or PDF file
(--format doc, --format pdf).`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("level", string(content.DefaultLevel), "Education level: SD_LOW, SD_HIGH, SMP or SMA")
	f.String("subject", "", "Subject, e.g. IPA (required)")
	f.String("topic", "", "Topic, e.g. Ekosistem (required)")
	f.String("context", "", "Source material text")
	f.String("context-file", "", "Read source material text from this file")
	f.StringArray("image", nil, "Image attachment path (repeatable)")
	f.Bool("no-summary", false, "Skip the material summary")
	f.String("format", "text", "Output: text, json, doc or pdf")
	f.String("out", ".", "Directory doc and pdf exports are written to")
	_ = generateCmd.MarkFlagRequired("subject")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	levelVal, _ := f.GetString("level")
	subject, _ := f.GetString("subject")
	topic, _ := f.GetString("topic")
	material, _ := f.GetString("context")
	materialFile, _ := f.GetString("context-file")
	images, _ := f.GetStringArray("image")
	noSummary, _ := f.GetBool("no-summary")
	format, _ := f.GetString("format")
	outDir, _ := f.GetString("out")

	level, err := content.ParseLevel(levelVal)
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	var exportFormat export.Format
	if format != "text" && format != "json" {
		if exportFormat, err = export.ParseFormat(format); err != nil {
			return err
		}
	}
	if materialFile != "" {
		data, err := os.ReadFile(materialFile)
		if err != nil {
			return fmt.Errorf("read context file: %w", err)
		}
		material = strings.TrimSpace(material + "\n" + string(data))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	gen := modulegen.New(llm.NewProviderFromEnv(log), cfg.GeneratorConfig())
	ws := studio.New(gen, log)
	ws.SetFields(studio.Fields{
		Level:          level,
		Subject:        subject,
		Topic:          topic,
		FreeText:       material,
		IncludeSummary: !noSummary,
	})

	if len(images) > 0 {
		res, err := intake.New(cfg.MaxAttachmentBytes).ReadPaths(images)
		if err != nil {
			return err
		}
		ws.Offer(res)
		if n := res.Notice(); n != "" {
			fmt.Fprintln(os.Stderr, n)
		}
	}

	result, err := ws.Submit(cmd.Context())
	if err != nil {
		if errors.Is(err, studio.ErrInvalidInput) {
			return errors.New(studio.NoticeMissingFields)
		}
		return errors.New(modulegen.UserMessage(err))
	}

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		return printModule(out, result)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Meta    content.Meta              `json:"meta"`
			Content *content.GeneratedContent `json:"content"`
		}{result.Meta, result.Content})
	}

	file, err := export.Export(result.Content, &result.Meta, exportFormat)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if file == nil {
		return errors.New("nothing to export")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintln(out, path)
	return nil
}

// printModule writes the summary and the quiz with its answer key.
func printModule(w io.Writer, r *studio.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s · %s\n", r.Meta.Subject, r.Meta.Topic, r.Meta.Level.DisplayName())
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n\n")

	if r.Content.HasSummary() {
		b.WriteString(export.HeadingSummary)
		b.WriteString("\n\n")
		b.WriteString(r.Content.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString(export.HeadingQuiz)
	b.WriteString("\n\n")
	for i, q := range r.Content.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Stimulus)
		fmt.Fprintf(&b, "   %s\n", q.QuestionText)
		for _, o := range q.Options {
			fmt.Fprintf(&b, "   %s. %s\n", o.Key, o.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString(export.HeadingKey)
	b.WriteString("\n\n")
	for i, q := range r.Content.Questions {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, q.CorrectAnswer, q.Explanation)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
