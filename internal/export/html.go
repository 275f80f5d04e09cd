package export

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const templateGlob = "templates/*.html.tmpl"

var templates = template.Must(template.ParseFS(templateFS, templateGlob))

// Templates returns a fresh parse of the export templates. Pages that show
// questions on screen parse their own templates into it to reuse the
// "stimulus", "stem", "options" and "summary" partials. The shared set
// above cannot be cloned once an export has executed it.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, templateGlob))
}

type labels struct {
	Subject, Topic, Level    string
	Summary, Quiz, Key       string
	Number, Answer, Analysis string
}

var docLabels = labels{
	Subject:  LabelSubject,
	Topic:    LabelTopic,
	Level:    LabelLevel,
	Summary:  HeadingSummary,
	Quiz:     HeadingQuiz,
	Key:      HeadingKey,
	Number:   ColumnNumber,
	Answer:   ColumnKey,
	Analysis: ColumnAnalysis,
}

type view struct {
	Title  string
	Labels labels
	Doc    *Document
}

func newView(doc *Document) view {
	return view{Title: TitleText, Labels: docLabels, Doc: doc}
}

// WriteHTML writes the document fragment.
func WriteHTML(w io.Writer, doc *Document) error {
	return templates.ExecuteTemplate(w, "document", newView(doc))
}

// utf8BOM makes Word pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteWord writes the fragment wrapped in a Word-readable HTML document.
func WriteWord(w io.Writer, doc *Document) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "word", newView(doc))
}
