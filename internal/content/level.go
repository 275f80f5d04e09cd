// Package content defines the study-module data model shared by the
// generator, the quiz and the exporters.
package content

import (
	"fmt"
	"strings"
)

// EducationLevel is the target school stage.
type EducationLevel string

const (
	LevelSDLow  EducationLevel = "SD_LOW"
	LevelSDHigh EducationLevel = "SD_HIGH"
	LevelSMP    EducationLevel = "SMP"
	LevelSMA    EducationLevel = "SMA"
)

// DefaultLevel is preselected in the form.
const DefaultLevel = LevelSMP

// AllLevels returns the levels in display order.
func AllLevels() []EducationLevel {
	return []EducationLevel{LevelSDLow, LevelSDHigh, LevelSMP, LevelSMA}
}

// DisplayName returns the label shown to users and printed in exports.
func (l EducationLevel) DisplayName() string {
	switch l {
	case LevelSDLow:
		return "SD Kelas 1-3"
	case LevelSDHigh:
		return "SD Kelas 4-6"
	case LevelSMP:
		return "SMP"
	case LevelSMA:
		return "SMA"
	}
	return string(l)
}

// String implements fmt.Stringer.
func (l EducationLevel) String() string { return l.DisplayName() }

// Valid reports whether l is one of the known levels.
func (l EducationLevel) Valid() bool {
	switch l {
	case LevelSDLow, LevelSDHigh, LevelSMP, LevelSMA:
		return true
	}
	return false
}

// OptionCount is the number of answer options per question.
// Younger students get fewer options.
func (l EducationLevel) OptionCount() int {
	switch l {
	case LevelSDLow:
		return 3
	case LevelSMA:
		return 5
	default:
		return 4
	}
}

// OptionLabels returns the first OptionCount letters starting at A.
func (l EducationLevel) OptionLabels() []string {
	n := l.OptionCount()
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = string(rune('A' + i))
	}
	return labels
}

// ParseLevel accepts a level code (case-insensitive, "-" or "_") or a
// display name.
func ParseLevel(s string) (EducationLevel, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, l := range AllLevels() {
		if norm == string(l) || strings.EqualFold(strings.TrimSpace(s), l.DisplayName()) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown education level %q", s)
}
