package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used by the feed and its query parameters.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range covering the given number of days back from end, inclusive.
func NewDateRange(end time.Time, daysBack int) DateRange {
	end = TruncateToDate(end)
	return DateRange{Start: end.AddDate(0, 0, -daysBack), End: end}
}

// StartISO returns the formatted start date.
func (r DateRange) StartISO() string { return r.Start.Format(DateLayout) }

// EndISO returns the formatted end date.
func (r DateRange) EndISO() string { return r.End.Format(DateLayout) }

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.StartISO(), r.EndISO())
}

// TruncateToDate drops the time-of-day component while keeping the calendar date of t's location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Range    DateRange
	URL      string
	Parsed   int // Rows parsed successfully and handed to the store
	Skipped  int // Rows dropped as unparseable
	Inserted int
	Failed   int // Rows whose insert failed
}

// FeedRow is the outcome of decoding one feed observation.
// When Err is non-nil the row was skipped and Observation is incomplete.
type FeedRow struct {
	Observation ExchangeRateObservation
	Err         error
}

// Skipped reports whether the row could not be parsed.
func (r FeedRow) Skipped() bool {
	return r.Err != nil
}
