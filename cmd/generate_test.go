package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/quiz"
	"github.com/abhisek/edugenius/internal/studio"
)

func TestPrintModule(t *testing.T) {
	c := &content.GeneratedContent{
		Summary: "Inflasi adalah kenaikan harga umum.",
		Questions: []content.Question{{
			ID:            1,
			Stimulus:      "Harga beras naik 20% dalam sebulan.",
			QuestionText:  "Apa penyebab paling mungkin?",
			Options:       []content.Option{{Key: "A", Text: "Gagal panen"}, {Key: "B", Text: "Subsidi"}},
			CorrectAnswer: "A",
			Explanation:   "Pasokan turun.",
		}},
	}
	r := &studio.Result{
		Meta:    content.Meta{Subject: "Ekonomi", Topic: "Inflasi", Level: content.LevelSMA},
		Content: c,
		Quiz:    quiz.New(c),
	}

	var b strings.Builder
	require.NoError(t, printModule(&b, r))
	out := b.String()

	assert.Contains(t, out, "Ekonomi · Inflasi · SMA")
	assert.Contains(t, out, "A. RINGKASAN MATERI")
	assert.Contains(t, out, "1. Harga beras naik 20% dalam sebulan.")
	assert.Contains(t, out, "   B. Subsidi")
	assert.Contains(t, out, "1. A  Pasokan turun.")
	assert.Less(t, strings.Index(out, "B. EVALUASI (HOTS)"), strings.Index(out, "KUNCI JAWABAN"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("EDUGENIUS_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("EDUGENIUS_TEST_DOTENV", "")
	os.Unsetenv("EDUGENIUS_TEST_DOTENV")

	c := &cobra.Command{}
	c.Flags().String("env-file", path, "")
	require.NoError(t, loadDotEnv(c, nil))
	assert.Equal(t, "loaded", os.Getenv("EDUGENIUS_TEST_DOTENV"))

	c = &cobra.Command{}
	c.Flags().String("env-file", filepath.Join(dir, "missing.env"), "")
	assert.NoError(t, loadDotEnv(c, nil))
}

func TestVersionString(t *testing.T) {
	out := versionString()
	assert.True(t, strings.HasPrefix(out, "edugenius "+version+" (go"), out)
}
