package tasks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

// Algorithm names a sorting algorithm.
type Algorithm int

const (
	AlgorithmBubble Algorithm = iota
	AlgorithmSelection
	AlgorithmInsertion
)

// Algorithms returns every algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmBubble, AlgorithmSelection, AlgorithmInsertion}
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmBubble:
		return "bubble"
	case AlgorithmSelection:
		return "selection"
	case AlgorithmInsertion:
		return "insertion"
	default:
		return ""
	}
}

// Label is the display name, e.g. "Bubble Sort".
func (a Algorithm) Label() string {
	if s := a.String(); s != "" {
		return strings.ToUpper(s[:1]) + s[1:] + " Sort"
	}
	return ""
}

// ParseAlgorithm accepts "bubble", "Bubble Sort", "bubble_sort" and the like.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{" sort", "_sort", "-sort", "sort"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok && trimmed != "" {
			name = strings.TrimSpace(trimmed)
			break
		}
	}
	for _, a := range Algorithms() {
		if name == a.String() {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrUnknownAlgorithm, s)
}

// Criterion is the song field a sort orders by, ascending.
type Criterion int

const (
	CriterionTitle Criterion = iota
	CriterionArtist
	CriterionMood
	CriterionEnergy
	CriterionValence
	CriterionDuration
)

// Criteria returns every criterion in menu order.
func Criteria() []Criterion {
	return []Criterion{CriterionTitle, CriterionArtist, CriterionMood, CriterionEnergy, CriterionValence, CriterionDuration}
}

func (c Criterion) String() string {
	switch c {
	case CriterionTitle:
		return "title"
	case CriterionArtist:
		return "artist"
	case CriterionMood:
		return "mood"
	case CriterionEnergy:
		return "energy"
	case CriterionValence:
		return "valence"
	case CriterionDuration:
		return "duration"
	default:
		return ""
	}
}

// Label is the display name, e.g. "Energy".
func (c Criterion) Label() string {
	if s := c.String(); s != "" {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return ""
}

// ParseCriterion matches s case-insensitively.
func ParseCriterion(s string) (Criterion, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Criteria() {
		if name == c.String() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrUnknownCriterion, s)
}

// Greater reports whether a orders strictly after b.
//
// Text fields compare case-insensitively, numeric fields numerically. Equal keys are never greater, which
// keeps bubble and insertion sort stable.
func (c Criterion) Greater(a, b models.Song) bool {
	switch c {
	case CriterionTitle:
		return strings.ToLower(a.Title) > strings.ToLower(b.Title)
	case CriterionArtist:
		return strings.ToLower(a.Artist) > strings.ToLower(b.Artist)
	case CriterionMood:
		return strings.ToLower(string(a.Mood)) > strings.ToLower(string(b.Mood))
	case CriterionEnergy:
		return a.Energy > b.Energy
	case CriterionValence:
		return a.Valence > b.Valence
	case CriterionDuration:
		return a.Duration > b.Duration
	default:
		panic(fmt.Sprintf("tasks: unknown criterion %d", int(c)))
	}
}

// Value renders the sort key of s for display.
func (c Criterion) Value(s models.Song) string {
	switch c {
	case CriterionTitle:
		return s.Title
	case CriterionArtist:
		return s.Artist
	case CriterionMood:
		return string(s.Mood)
	case CriterionEnergy:
		return strconv.Itoa(s.Energy)
	case CriterionValence:
		return strconv.Itoa(s.Valence)
	case CriterionDuration:
		return shared.FormatDuration(s.Duration)
	default:
		return ""
	}
}
