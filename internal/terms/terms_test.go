package terms

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	return ParseDate(s)
}

func makePeriod(id int, title, start, end string) Period {
	return Period{
		ID:    id,
		Title: title,
		Window: Window{
			Start: ParseDate(start),
			End:   ParseDate(end),
		},
	}
}

func TestParseDateMalformed(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-45", "  ", "Term 2"} {
		if !ParseDate(s).IsZero() {
			t.Fatalf("Expected zero time for %q", s)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	if ParseDate("2024-01-01T00:00:00Z").IsZero() {
		t.Fatal("Failed to parse RFC3339")
	}
	if ParseDate("2024-06-15T10:30:00.123Z").IsZero() {
		t.Fatal("Failed to parse RFC3339 with fractional seconds")
	}
	if ParseDate("2024-01-01").IsZero() {
		t.Fatal("Failed to parse bare date")
	}
}

func TestWindowActive(t *testing.T) {
	now := date("2024-07-01T00:00:00Z")

	checkActive := func(start, end string, expected bool) {
		w := Window{Start: ParseDate(start), End: ParseDate(end)}
		if w.Active(now) != expected {
			t.Fatalf("Window{%q, %q}.Active = %v, expected %v", start, end, !expected, expected)
		}
	}

	checkActive("2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z", true)
	checkActive("2024-08-01T00:00:00Z", "2024-12-01T00:00:00Z", false)
	checkActive("2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z", false)
	checkActive("", "2024-12-01T00:00:00Z", true)
	checkActive("2024-01-01T00:00:00Z", "", true)
	checkActive("", "", true)
	// Bounds are inclusive.
	checkActive("2024-07-01T00:00:00Z", "2024-07-01T00:00:00Z", true)
	// Malformed bounds behave as absent.
	checkActive("garbage", "garbage", true)
}

func checkResolved(t *testing.T, got *Period, wantID int) {
	t.Helper()
	if got == nil {
		t.Fatalf("Resolved no period, expected id %d", wantID)
	}
	if got.ID != wantID {
		t.Fatalf("Resolved period %d, expected %d", got.ID, wantID)
	}
}

func TestResolvePicksActivePeriod(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2024-07-01T00:00:00Z")

	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 2)
}

func TestResolvePrefersLatestStart(t *testing.T) {
	// Both active; the one that started later wins.
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-06-01T00:00:00Z", "2024-08-01T00:00:00Z"),
	}
	now := date("2024-07-01T00:00:00Z")

	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 2)
}

func TestResolveTieBreaksOnEndDate(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-08-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2024-07-01T00:00:00Z")

	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 2)
}

func TestResolveIdenticalDatesAreStable(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2024-07-01T00:00:00Z")

	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 1)
}

func TestResolveEndDateFallback(t *testing.T) {
	// Nothing active: now is past both periods.
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2025-01-01T00:00:00Z")

	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 2)
}

func TestResolveNameSortFallback(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2023-01-01T00:00:00Z", "2023-06-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2022-01-01T00:00:00Z", "2022-06-01T00:00:00Z"),
	}
	now := date("2025-01-01T00:00:00Z")

	// All candidates share the title, so the stable sort keeps input order.
	checkResolved(t, Resolve(periods, "Term 2", now, FallbackNameSort), 1)
}

func TestResolveIsDeterministic(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"),
		makePeriod(2, "Term 2", "", ""),
		makePeriod(3, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2025-01-01T00:00:00Z")

	for _, fallback := range []FallbackPolicy{FallbackEndDate, FallbackNameSort} {
		first := Resolve(periods, "Term 2", now, fallback)
		for i := 0; i < 5; i++ {
			again := Resolve(periods, "Term 2", now, fallback)
			if again == nil || again.ID != first.ID {
				t.Fatalf("Resolve is not deterministic under policy %d", fallback)
			}
		}
	}
}

func TestResolveUnknownLabel(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"),
	}
	now := date("2024-03-01T00:00:00Z")

	if got := Resolve(periods, "Term 3", now, FallbackEndDate); got != nil {
		t.Fatalf("Expected nil for unknown label, got period %d", got.ID)
	}
	if got := Resolve(nil, "Term 2", now, FallbackEndDate); got != nil {
		t.Fatalf("Expected nil for empty period list, got period %d", got.ID)
	}
}

func TestResolveUndatedPeriodsLose(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 2", "", ""),
		makePeriod(2, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}
	now := date("2024-07-01T00:00:00Z")

	// Both are active (the undated one is unbounded), but the dated one
	// started more recently.
	checkResolved(t, Resolve(periods, "Term 2", now, FallbackEndDate), 2)
}

func TestDetectOverride(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Term 1", "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}

	title, ok := DetectOverride(periods, date("2024-07-01T00:00:00Z"))
	if !ok || title != "Term 2" {
		t.Fatalf("Expected override Term 2, got %q (ok=%v)", title, ok)
	}

	title, ok = DetectOverride(periods, date("2024-03-01T00:00:00Z"))
	if !ok || title != "Term 1" {
		t.Fatalf("Expected override Term 1, got %q (ok=%v)", title, ok)
	}

	if _, ok := DetectOverride(periods, date("2025-03-01T00:00:00Z")); ok {
		t.Fatal("Expected no override when nothing is active")
	}
	if _, ok := DetectOverride(nil, date("2024-03-01T00:00:00Z")); ok {
		t.Fatal("Expected no override for empty period list")
	}
}

func TestDetectOverridePicksNewestActive(t *testing.T) {
	periods := []Period{
		makePeriod(1, "Full Year", "2024-01-01T00:00:00Z", "2024-12-31T00:00:00Z"),
		makePeriod(2, "Term 2", "2024-06-02T00:00:00Z", "2024-12-01T00:00:00Z"),
	}

	title, ok := DetectOverride(periods, date("2024-07-01T00:00:00Z"))
	if !ok || title != "Term 2" {
		t.Fatalf("Expected the most recently started active title, got %q", title)
	}
}
