package intake

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAccept_FiltersNonImages(t *testing.T) {
	in := New(0)
	res := in.Accept([]File{
		{Name: "grafik.png", DeclaredType: "image/png", Data: pngBytes(t)},
		{Name: "catatan.txt", DeclaredType: "text/plain", Data: []byte("hukum newton")},
		{Name: "materi.pdf", DeclaredType: "application/pdf", Data: []byte("%PDF-1.7\n")},
	})

	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "grafik.png", res.Accepted[0].Name)
	assert.Equal(t, "image/png", res.Accepted[0].MIMEType)

	require.Len(t, res.Rejected, 2)
	assert.Equal(t, NoticeNotImage, res.Notice())
}

func TestAccept_SniffsContentOverDeclaredType(t *testing.T) {
	res := New(0).Accept([]File{
		// Declared as image but actually text.
		{Name: "fake.png", DeclaredType: "image/png", Data: []byte("not an image at all")},
		// Declared as octet-stream but actually PNG.
		{Name: "upload.bin", DeclaredType: "application/octet-stream", Data: pngBytes(t)},
	})

	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "upload.bin", res.Accepted[0].Name)
	assert.Equal(t, "image/png", res.Accepted[0].MIMEType)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "fake.png", res.Rejected[0].Name)
}

func TestAccept_SizeCap(t *testing.T) {
	data := pngBytes(t)
	res := New(int64(len(data) - 1)).Accept([]File{{Name: "besar.png", Data: data}})

	assert.Empty(t, res.Accepted)
	require.Len(t, res.Rejected, 1)
	assert.Contains(t, res.Notice(), "besar.png is larger than")
}

func TestAccept_EmptyFile(t *testing.T) {
	res := New(0).Accept([]File{{Name: "kosong.png", DeclaredType: "image/png"}})
	assert.Empty(t, res.Accepted)
	assert.Equal(t, NoticeNotImage, res.Notice())
}

func TestReadPaths(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "diagram.png")
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(img, pngBytes(t), 0o644))
	require.NoError(t, os.WriteFile(txt, []byte("plain"), 0o644))

	res, err := New(0).ReadPaths([]string{img, " ", txt})
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "diagram.png", res.Accepted[0].Name)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "notes.txt", res.Rejected[0].Name)

	_, err = New(0).ReadPaths([]string{filepath.Join(dir, "missing.png")})
	assert.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "5 MB", humanSize(DefaultMaxBytes))
	assert.Equal(t, "512 KB", humanSize(512<<10))
}
