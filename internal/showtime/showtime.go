// Package showtime splits shows into past and upcoming sets relative to a
// single reference time. Callers take one snapshot of "now" per request and
// pass it to every call so a response never classifies a show two ways.
package showtime

import (
	"sort"
	"time"

	"github.com/farellandr/fyyur/internal/models"
)

// IsUpcoming reports whether a show starting at start has not yet begun at
// now. A show starting exactly at now counts as upcoming.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}

// Partition returns past shows (most recent first) and upcoming shows
// (soonest first). The input slice is not modified.
func Partition(shows []models.Show, now time.Time) (past, upcoming []models.Show) {
	past = make([]models.Show, 0, len(shows))
	upcoming = make([]models.Show, 0, len(shows))
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	sort.SliceStable(past, func(i, j int) bool { return past[i].StartTime.After(past[j].StartTime) })
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].StartTime.Before(upcoming[j].StartTime) })
	return past, upcoming
}

func CountUpcoming(shows []models.Show, now time.Time) int {
	n := 0
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			n++
		}
	}
	return n
}
