package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/go-pdf/fpdf"
)

// Sheet geometry in inches.
const (
	pdfMargin      = 0.5
	pdfPageWidth   = 8.5 - 2*pdfMargin
	pdfPageHeight  = 11 - 2*pdfMargin
	pdfJPEGQuality = 98
)

// WritePDF rasterizes the document and writes one image per US-letter
// page.
func WritePDF(w io.Writer, doc *Document) error {
	pages, err := Rasterize(doc)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(doc.Name, true)
	pdf.SetCreator("EduGenius HOTS", true)

	for i, page := range pages {
		data, err := encodeJPEG(page)
		if err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, pdfMargin, pdfMargin, pdfPageWidth, pdfPageHeight, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: pdfJPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
