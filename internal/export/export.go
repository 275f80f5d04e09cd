package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/abhisek/edugenius/internal/content"
)

// Format is a download format.
type Format string

const (
	FormatWord Format = "doc"
	FormatPDF  Format = "pdf"
)

// MIME types of the downloads.
const (
	MIMEWord = "application/msword"
	MIMEPDF  = "application/pdf"
)

// ParseFormat accepts "doc", "word" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "doc", "word":
		return FormatWord, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Ext is the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// MIMEType is the Content-Type the file is served with.
func (f Format) MIMEType() string {
	if f == FormatPDF {
		return MIMEPDF
	}
	return MIMEWord
}

// File is a rendered download.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Export renders c in format f. With no content or no meta it returns
// (nil, nil): there is nothing to export.
func Export(c *content.GeneratedContent, meta *content.Meta, f Format) (*File, error) {
	doc, ok := NewDocument(c, meta)
	if !ok {
		return nil, nil
	}

	var buf bytes.Buffer
	var err error
	switch f {
	case FormatWord:
		err = WriteWord(&buf, doc)
	case FormatPDF:
		err = WritePDF(&buf, doc)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", f, err)
	}
	return &File{
		Name:     FileName(*meta, f),
		MIMEType: f.MIMEType(),
		Data:     buf.Bytes(),
	}, nil
}
