package modulegen

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/llm"
)

const (
	summaryDirective   = "Create a concise but comprehensive study module (summary) of the material. Use Markdown formatting with headings and bullet points."
	noSummaryDirective = "Do not create a summary."

	materialPrefix   = "Material Text:\n"
	materialFallback = "Material: Generate based on the Topic and Subject provided."
)

// buildSystemPrompt renders the system instruction for one generation.
func buildSystemPrompt(in content.FormInput, questionCount int) string {
	summary := noSummaryDirective
	if in.IncludeSummary {
		summary = summaryDirective
	}
	labels := strings.Join(in.Level.OptionLabels(), ", ")

	var b strings.Builder

	b.WriteString("You are an expert educational content creator specialized in HOTS (Higher Order Thinking Skills) for the Indonesian curriculum.\n\n")

	fmt.Fprintf(&b, "Target Audience: %s\n", in.Level.DisplayName())
	fmt.Fprintf(&b, "Subject: %s\n", strings.TrimSpace(in.Subject))
	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(in.Topic))

	b.WriteString("\nYour Task:\n")
	fmt.Fprintf(&b, "1. %s\n", summary)
	fmt.Fprintf(&b, "2. Generate %d Multiple Choice Questions that require Higher Order Thinking Skills.\n", questionCount)

	b.WriteString("\nCRITICAL RULES:\n")
	b.WriteString("1. **Stimulus**: Every question MUST start with a stimulus (a case study, data, table description, chart description, short reading or real-life scenario) that the student has to analyze.\n")
	b.WriteString("2. **Thinking Level**: Questions must target C4 (Analyze), C5 (Evaluate) or C6 (Create). Avoid C1 (Remember) and C2 (Understand).\n")
	b.WriteString("3. **Contextual**: Relate questions to real-world situations that require transfer of knowledge.\n")
	fmt.Fprintf(&b, "4. **Option Count**: Every question must have exactly %d options (%s).\n", in.Level.OptionCount(), labels)
	b.WriteString("5. **Distractors**: Wrong options must be plausible and homogeneous.\n")

	b.WriteString("\nIf the user uploaded an image, analyze it carefully and use it as the main source material or as the stimulus for the questions.")

	return b.String()
}

// buildMaterialText renders the text part of the user message.
func buildMaterialText(freeText string) string {
	if strings.TrimSpace(freeText) == "" {
		return materialFallback
	}
	return materialPrefix + freeText
}

// BuildRequest assembles the model request for one generation: system
// instruction, one text part, one inline part per attachment and the
// level's response schema.
func BuildRequest(in content.FormInput, cfg Config) (llm.Request, error) {
	if !in.Level.Valid() {
		return llm.Request{}, fmt.Errorf("unknown education level %q", in.Level)
	}

	blobs := make([]llm.Blob, 0, len(in.Attachments))
	for i, a := range in.Attachments {
		if len(a.Data) == 0 {
			return llm.Request{}, fmt.Errorf("attachment %d (%s) is empty", i, a.Name)
		}
		if !strings.HasPrefix(a.MIMEType, "image/") {
			return llm.Request{}, fmt.Errorf("attachment %d (%s) is not an image: %s", i, a.Name, a.MIMEType)
		}
		blobs = append(blobs, llm.Blob{MIMEType: a.MIMEType, Data: a.Data})
	}

	count := cfg.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}

	return llm.Request{
		System: buildSystemPrompt(in, count),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildMaterialText(in.FreeText), Blobs: blobs},
		},
		Schema:      SchemaFor(in.Level),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, nil
}
