package booking

import (
	"sort"
	"time"

	"flowmaster/models"
)

// GenerateSlots expands the working windows into bookable instants on day.
// Each window yields start, start+30m, ... while the instant is strictly before its end.
// Overlapping windows are merged; the result is sorted and free of duplicates.
func GenerateSlots(windows []models.WorkingWindow, day time.Time) []time.Time {
	midnight := startOfDay(day)
	seen := make(map[int64]struct{})
	slots := make([]time.Time, 0)

	for _, w := range windows {
		from, ok := models.ParseClock(w.StartTime)
		if !ok {
			continue
		}
		to, ok := models.ParseClock(w.EndTime)
		if !ok {
			continue
		}
		end := midnight.Add(to)
		for t := midnight.Add(from); t.Before(end); t = t.Add(models.SlotDuration) {
			if _, dup := seen[t.Unix()]; dup {
				continue
			}
			seen[t.Unix()] = struct{}{}
			slots = append(slots, t)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
