package tasks

import (
	"errors"
	"testing"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input string
		want  Algorithm
		err   error
	}{
		{"bubble", AlgorithmBubble, nil},
		{"Bubble Sort", AlgorithmBubble, nil},
		{"SELECTION", AlgorithmSelection, nil},
		{"insertion_sort", AlgorithmInsertion, nil},
		{"insertion-sort", AlgorithmInsertion, nil},
		{"quick", 0, shared.ErrUnknownAlgorithm},
		{"sort", 0, shared.ErrUnknownAlgorithm},
		{"", 0, shared.ErrUnknownAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseAlgorithm(%q) error = %v, want %v", tt.input, err, tt.err)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if got := AlgorithmSelection.Label(); got != "Selection Sort" {
		t.Errorf("Label() = %q", got)
	}
}

func TestCriteria(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		for _, c := range Criteria() {
			got, err := ParseCriterion(c.Label())
			if err != nil || got != c {
				t.Errorf("ParseCriterion(%q) = %v, %v", c.Label(), got, err)
			}
		}
		if _, err := ParseCriterion("tempo"); !errors.Is(err, shared.ErrUnknownCriterion) {
			t.Errorf("ParseCriterion(tempo) error = %v", err)
		}
	})

	t.Run("Greater", func(t *testing.T) {
		a := models.Song{Title: "apple", Artist: "Zed", Mood: models.MoodSad, Energy: 10, Valence: 90, Duration: 100}
		b := models.Song{Title: "Banana", Artist: "adele", Mood: models.MoodCalm, Energy: 20, Valence: 80, Duration: 100}

		tests := []struct {
			criterion Criterion
			ab, ba    bool
		}{
			{CriterionTitle, false, true},
			{CriterionArtist, true, false},
			{CriterionMood, true, false},
			{CriterionEnergy, false, true},
			{CriterionValence, true, false},
			{CriterionDuration, false, false},
		}
		for _, tt := range tests {
			t.Run(tt.criterion.String(), func(t *testing.T) {
				if got := tt.criterion.Greater(a, b); got != tt.ab {
					t.Errorf("Greater(a, b) = %v, want %v", got, tt.ab)
				}
				if got := tt.criterion.Greater(b, a); got != tt.ba {
					t.Errorf("Greater(b, a) = %v, want %v", got, tt.ba)
				}
			})
		}
	})

	t.Run("Value", func(t *testing.T) {
		s := models.Song{Title: "t", Energy: 42, Duration: 200}
		if got := CriterionEnergy.Value(s); got != "42" {
			t.Errorf("energy value = %q", got)
		}
		if got := CriterionDuration.Value(s); got != "3:20" {
			t.Errorf("duration value = %q", got)
		}
	})
}
