// Package export renders a generated module as a printable document and
// serializes it for Word and PDF downloads.
package export

import (
	"strings"

	"github.com/abhisek/edugenius/internal/content"
)

// Fixed document text.
const (
	TitleText      = "MODUL DAN EVALUASI BELAJAR"
	LabelSubject   = "Mata Pelajaran:"
	LabelTopic     = "Topik:"
	LabelLevel     = "Jenjang:"
	HeadingSummary = "A. RINGKASAN MATERI"
	HeadingQuiz    = "B. EVALUASI (HOTS)"
	HeadingKey     = "KUNCI JAWABAN & PEMBAHASAN"
	ColumnNumber   = "No"
	ColumnKey      = "Kunci"
	ColumnAnalysis = "Pembahasan / Analisis"
)

// Item is a question with its 1-based display number.
type Item struct {
	Number int
	content.Question
}

// Document is the print layout shared by every output format.
type Document struct {
	Name      string
	Subject   string
	Topic     string
	Level     string
	Summary   string
	Questions []Item
}

// HasSummary reports whether the summary section is printed.
func (d *Document) HasSummary() bool {
	return strings.TrimSpace(d.Summary) != ""
}

// NewDocument lays out c for printing. It returns false when there is
// nothing to export.
func NewDocument(c *content.GeneratedContent, meta *content.Meta) (*Document, bool) {
	if c == nil || meta == nil {
		return nil, false
	}
	doc := &Document{
		Name:    BaseName(*meta),
		Subject: meta.Subject,
		Topic:   meta.Topic,
		Level:   meta.Level.DisplayName(),
	}
	if c.HasSummary() {
		doc.Summary = c.Summary
	}
	for i, q := range c.Questions {
		doc.Questions = append(doc.Questions, Item{Number: i + 1, Question: q})
	}
	return doc, true
}
