package terms

import (
	"sort"
	"strings"
	"time"
)

// ParseDate parses an upstream timestamp. The API is inconsistent about
// date formats and frequently omits bounds entirely, so anything that does
// not parse is normalized to the zero time, meaning "unbounded".
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Window is an optionally bounded time interval. A zero Start or End means
// unbounded in that direction.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Active(now time.Time) bool {
	started := w.Start.IsZero() || !w.Start.After(now)
	notEnded := w.End.IsZero() || !w.End.Before(now)
	return started && notEnded
}

// Period is a named grading interval within a course.
type Period struct {
	ID    int
	Title string
	Window
}

type FallbackPolicy int

const (
	// FallbackEndDate picks the period with the latest end date.
	FallbackEndDate FallbackPolicy = iota
	// FallbackNameSort picks the lexically first title, case-insensitive.
	FallbackNameSort
)

// newer orders periods by start date descending, ties broken by end date
// descending. Zero times sort as the oldest possible value, so undated
// periods lose to any dated one.
func newer(a, b *Period) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.After(b.Start)
	}
	return a.End.After(b.End)
}

func activeSubset(periods []*Period, now time.Time) []*Period {
	active := make([]*Period, 0, len(periods))
	for _, p := range periods {
		if p.Active(now) {
			active = append(active, p)
		}
	}
	return active
}

func newest(periods []*Period) *Period {
	sorted := make([]*Period, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i], sorted[j])
	})
	return sorted[0]
}

// Resolve picks the single grading period to report on for a course.
//
// Only periods titled exactly termLabel are considered. Among those, a
// currently active period wins, newest first. If none is active the choice
// falls back to the configured policy over the whole titled set. Returns
// nil when no period carries the label at all.
func Resolve(periods []Period, termLabel string, now time.Time, fallback FallbackPolicy) *Period {
	titled := make([]*Period, 0, len(periods))
	for i := range periods {
		if periods[i].Title == termLabel {
			titled = append(titled, &periods[i])
		}
	}
	if len(titled) == 0 {
		return nil
	}

	if active := activeSubset(titled, now); len(active) > 0 {
		return newest(active)
	}

	sorted := make([]*Period, len(titled))
	copy(sorted, titled)
	switch fallback {
	case FallbackNameSort:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].End.After(sorted[j].End)
		})
	}
	return sorted[0]
}

// DetectOverride looks for any period active right now, regardless of
// title, and reports its title. The caller uses it to supersede a stale
// configured term label with whatever is actually in progress.
func DetectOverride(periods []Period, now time.Time) (string, bool) {
	all := make([]*Period, 0, len(periods))
	for i := range periods {
		all = append(all, &periods[i])
	}
	active := activeSubset(all, now)
	if len(active) == 0 {
		return "", false
	}
	return newest(active).Title, true
}
