package grades

import (
	"math"
	"sort"
)

// NoGrade is reported when a score is absent or no tier matches.
const NoGrade = "N/A"

// ScaleTier maps a minimum percentage to a letter grade. Colour names the
// terminal color used when rendering that tier.
type ScaleTier struct {
	MinPercent  float64 `yaml:"minpercent"`
	LetterGrade string  `yaml:"lettergrade"`
	Colour      string  `yaml:"colour"`
}

type Scale []ScaleTier

// DefaultScale is used when no scale file is configured.
func DefaultScale() Scale {
	return Scale{
		{MinPercent: 90, LetterGrade: "A", Colour: "green"},
		{MinPercent: 80, LetterGrade: "B", Colour: "cyan"},
		{MinPercent: 70, LetterGrade: "C", Colour: "yellow"},
		{MinPercent: 60, LetterGrade: "D", Colour: "magenta"},
		{MinPercent: 0, LetterGrade: "F", Colour: "red"},
	}
}

// sortedDesc returns a copy of the scale ordered highest threshold first.
// Callers may hand over tiers in any order; the caller's slice is never
// reordered.
func (s Scale) sortedDesc() Scale {
	sorted := make(Scale, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinPercent > sorted[j].MinPercent
	})
	return sorted
}

// Letter maps a numeric percentage to a letter grade. A nil or NaN score,
// or a score below every tier, maps to NoGrade. Total: never panics.
func (s Scale) Letter(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return NoGrade
	}
	for _, tier := range s.sortedDesc() {
		if *score >= tier.MinPercent {
			return tier.LetterGrade
		}
	}
	return NoGrade
}

// TierFor returns the tier a numeric percentage lands in, or false when no
// tier matches.
func (s Scale) TierFor(score float64) (ScaleTier, bool) {
	if math.IsNaN(score) {
		return ScaleTier{}, false
	}
	for _, tier := range s.sortedDesc() {
		if score >= tier.MinPercent {
			return tier, true
		}
	}
	return ScaleTier{}, false
}
