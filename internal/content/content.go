package content

import "strings"

// Option is one answer choice of a question.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a single HOTS multiple-choice item.
type Question struct {
	ID            int      `json:"id"`
	Stimulus      string   `json:"stimulus"`
	QuestionText  string   `json:"questionText"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Option returns the option with the given key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// HasKey reports whether key names one of the question's options.
func (q Question) HasKey(key string) bool {
	_, ok := q.Option(key)
	return ok
}

// GeneratedContent is one generation result. It is replaced as a whole
// on every new generation.
type GeneratedContent struct {
	Summary   string     `json:"summary,omitempty"`
	Questions []Question `json:"questions"`
}

// HasSummary reports whether a non-blank summary is present.
func (c *GeneratedContent) HasSummary() bool {
	return c != nil && strings.TrimSpace(c.Summary) != ""
}

// Question looks up a question by its model-assigned id.
func (c *GeneratedContent) Question(id int) (Question, bool) {
	if c == nil {
		return Question{}, false
	}
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Meta records the form values a result was generated from.
type Meta struct {
	Subject string         `json:"subject"`
	Topic   string         `json:"topic"`
	Level   EducationLevel `json:"level"`
}

// Attachment is an image supplied as source material.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// FormInput holds the parameters a generation is requested with.
type FormInput struct {
	Level          EducationLevel `json:"level"`
	Subject        string         `json:"subject"`
	Topic          string         `json:"topic"`
	FreeText       string         `json:"context"`
	Attachments    []Attachment   `json:"-"`
	IncludeSummary bool           `json:"includeSummary"`
}

// NewFormInput returns the form defaults: SMP, summary on.
func NewFormInput() FormInput {
	return FormInput{Level: DefaultLevel, IncludeSummary: true}
}

// Meta captures the identifying fields of the input.
func (in FormInput) Meta() Meta {
	return Meta{
		Subject: strings.TrimSpace(in.Subject),
		Topic:   strings.TrimSpace(in.Topic),
		Level:   in.Level,
	}
}
