// Package intake turns uploaded files into image attachments.
package intake

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/edugenius/internal/content"
)

// DefaultMaxBytes caps a single attachment.
const DefaultMaxBytes int64 = 5 << 20

// NoticeNotImage is shown when a non-image file is offered.
const NoticeNotImage = "Only image files are currently supported for visual analysis."

// File is an offered upload before classification.
type File struct {
	Name         string
	DeclaredType string
	Data         []byte

	// Size overrides len(Data) when the content was not read because it
	// is already known to be too large.
	Size int64
}

func (f File) size() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// Rejection records a file that was not accepted and why.
type Rejection struct {
	Name   string
	Notice string
}

// Result is the outcome of offering a batch of files.
type Result struct {
	Accepted []content.Attachment
	Rejected []Rejection
}

// Notice returns the distinct rejection notices joined into one message,
// or "" when every file was accepted.
func (r Result) Notice() string {
	var notices []string
	seen := map[string]bool{}
	for _, rej := range r.Rejected {
		if !seen[rej.Notice] {
			seen[rej.Notice] = true
			notices = append(notices, rej.Notice)
		}
	}
	return strings.Join(notices, " ")
}

// Intake classifies uploads. The zero value uses DefaultMaxBytes.
type Intake struct {
	MaxBytes int64
}

// New returns an Intake with the given per-file cap.
func New(maxBytes int64) *Intake {
	return &Intake{MaxBytes: maxBytes}
}

// Limit returns the effective per-file cap.
func (i *Intake) Limit() int64 { return i.maxBytes() }

func (i *Intake) maxBytes() int64 {
	if i == nil || i.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return i.MaxBytes
}

// Accept keeps image files and rejects everything else. The media type is
// sniffed from the content; the declared type is only trusted when the
// content is not recognized at all.
func (i *Intake) Accept(files []File) Result {
	var res Result
	for _, f := range files {
		if f.size() > i.maxBytes() {
			res.Rejected = append(res.Rejected, Rejection{
				Name:   f.Name,
				Notice: fmt.Sprintf("%s is larger than %s.", f.Name, humanSize(i.maxBytes())),
			})
			continue
		}
		mt, ok := imageType(f)
		if !ok {
			res.Rejected = append(res.Rejected, Rejection{Name: f.Name, Notice: NoticeNotImage})
			continue
		}
		res.Accepted = append(res.Accepted, content.Attachment{
			Name:     f.Name,
			MIMEType: mt,
			Data:     f.Data,
		})
	}
	return res
}

func imageType(f File) (string, bool) {
	if len(f.Data) == 0 {
		return "", false
	}
	detected := mimetype.Detect(f.Data)
	if strings.HasPrefix(detected.String(), "image/") {
		return detected.String(), true
	}
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(f.DeclaredType, ";", 2)[0]))
	if detected.Is("application/octet-stream") && strings.HasPrefix(declared, "image/") {
		return declared, true
	}
	return "", false
}

// ReadPaths loads files from disk and classifies them. A file that cannot
// be read is an error, not a rejection.
func (i *Intake) ReadPaths(paths []string) (Result, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return Result{}, fmt.Errorf("read attachment: %w", err)
		}
		if info.Size() > i.maxBytes() {
			files = append(files, File{Name: filepath.Base(p), Size: info.Size()})
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return Result{}, fmt.Errorf("read attachment: %w", err)
		}
		files = append(files, File{Name: filepath.Base(p), Data: data})
	}
	return i.Accept(files), nil
}

// ReadMultipart loads uploaded form files and classifies them.
func (i *Intake) ReadMultipart(headers []*multipart.FileHeader) (Result, error) {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		if h.Size > i.maxBytes() {
			files = append(files, File{Name: h.Filename, Size: h.Size})
			continue
		}
		f, err := h.Open()
		if err != nil {
			return Result{}, fmt.Errorf("open upload %s: %w", h.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, i.maxBytes()+1))
		f.Close()
		if err != nil {
			return Result{}, fmt.Errorf("read upload %s: %w", h.Filename, err)
		}
		files = append(files, File{
			Name:         h.Filename,
			DeclaredType: h.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	return i.Accept(files), nil
}

func humanSize(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d KB", n>>10)
}
