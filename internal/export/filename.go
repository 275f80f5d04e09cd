package export

import (
	"strings"

	"github.com/abhisek/edugenius/internal/content"
)

// BaseName returns the download name without extension,
// Modul_Soal_<subject>_<topic>. Spaces are kept.
func BaseName(meta content.Meta) string {
	return "Modul_Soal_" + sanitize(meta.Subject) + "_" + sanitize(meta.Topic)
}

// FileName returns BaseName with the extension of f.
func FileName(meta content.Meta, f Format) string {
	return BaseName(meta) + "." + f.Ext()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
