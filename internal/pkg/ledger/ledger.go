package ledger

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Entry is anything recorded at an instant with a monetary total.
type Entry interface {
	OccurredAt() time.Time
	Total() int64
}

// Day holds the entries of one calendar day.
type Day[T Entry] struct {
	Date  string `json:"date"`
	Items []T    `json:"items"`
	Total int64  `json:"total"`
}

// Ledger is a list of days, newest first, with a grand total.
type Ledger[T Entry] struct {
	Days  []Day[T] `json:"days"`
	Total int64    `json:"total"`
	Count int      `json:"count"`
}

// GroupByDay buckets entries by calendar day in loc (UTC when nil). Days and
// the entries inside each day are ordered newest first.
func GroupByDay[T Entry](entries []T, loc *time.Location) Ledger[T] {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]T, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt().After(sorted[j].OccurredAt())
	})

	out := Ledger[T]{Days: []Day[T]{}}
	for _, e := range sorted {
		date := e.OccurredAt().In(loc).Format(dayLayout)
		if n := len(out.Days); n == 0 || out.Days[n-1].Date != date {
			out.Days = append(out.Days, Day[T]{Date: date})
		}
		day := &out.Days[len(out.Days)-1]
		day.Items = append(day.Items, e)
		day.Total += e.Total()
		out.Total += e.Total()
		out.Count++
	}
	return out
}
