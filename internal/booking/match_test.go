package booking

import (
	"testing"
	"time"

	"github.com/example/gymsched/internal/brp"
)

func activityAt(id int64, name string, start time.Time) brp.GroupActivity {
	return brp.GroupActivity{
		ID:       id,
		Name:     name,
		Duration: brp.Duration{Start: start, End: start.Add(time.Hour)},
	}
}

func TestMatch(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	// 17:00 UTC is 18:00 in CET.
	spin := activityAt(1, "Spin", time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC))
	spinLate := activityAt(2, "Spin", time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC))
	yoga := activityAt(3, "  Yoga  ", time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC))
	listing := []brp.GroupActivity{spin, spinLate, yoga}

	tests := []struct {
		name      string
		lookup    string
		timeOfDay string
		wantID    int64
		wantFound bool
	}{
		{name: "case-insensitive equality", lookup: "spin", wantID: 1, wantFound: true},
		{name: "trims both sides", lookup: "  yoga ", wantID: 3, wantFound: true},
		{name: "no substring matching", lookup: "spi", wantFound: false},
		{name: "time narrows to the right session", lookup: "spin", timeOfDay: "20:00", wantID: 2, wantFound: true},
		{name: "time excludes wrong session", lookup: "spin", timeOfDay: "19:00", wantFound: false},
		{name: "first wins when time omitted", lookup: "Spin", wantID: 1, wantFound: true},
		{name: "unknown name", lookup: "crossfit", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Match(listing, tt.lookup, tt.timeOfDay, loc)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && got.ID != tt.wantID {
				t.Errorf("matched id %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestMatch_MinuteGranularity(t *testing.T) {
	// Seconds on the remote start time are discarded.
	a := activityAt(1, "Spin", time.Date(2026, 9, 1, 18, 0, 42, 0, time.UTC))
	if _, found := Match([]brp.GroupActivity{a}, "spin", "18:00", time.UTC); !found {
		t.Error("seconds should not affect time matching")
	}
}
