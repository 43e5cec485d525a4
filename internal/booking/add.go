package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/gymsched/internal/schedule"
)

// ErrNotScheduled means the class does not exist in the remote listing at
// the entry's next occurrence.
var ErrNotScheduled = errors.New("not scheduled")

// Adder persists new schedule entries, but only after confirming the
// class actually exists at its next occurrence. A typo in the name or
// location is caught here instead of on every future booking run.
type Adder struct {
	Store  *schedule.Store
	Client Service
	Loc    *time.Location
	Policy Policy
}

// Add validates the entry, rejects duplicates, verifies the class against
// the live listing for the next occurrence, and persists. The occurrence
// date is returned for messaging.
func (a *Adder) Add(ctx context.Context, e schedule.Entry) (time.Time, error) {
	if err := e.Validate(); err != nil {
		return time.Time{}, err
	}
	dup, err := a.Store.Contains(e)
	if err != nil {
		return time.Time{}, err
	}
	if dup {
		return time.Time{}, fmt.Errorf("%s at %s on %ss: %w",
			e.Name, e.Location, schedule.WeekdayName(e.Weekday), schedule.ErrDuplicate)
	}

	day := NextOccurrence(e.Weekday, time.Now().In(a.Loc), a.Policy)
	unit, err := a.Client.BusinessUnitByName(ctx, e.Location)
	if err != nil {
		return time.Time{}, err
	}
	listing, err := a.Client.GroupActivities(ctx, unit.ID, day, a.Loc)
	if err != nil {
		return time.Time{}, err
	}
	if _, found := Match(listing, e.Name, e.Time, a.Loc); !found {
		return time.Time{}, fmt.Errorf("%s is %w %s at %s",
			e.Name, ErrNotScheduled, day.Format("2006-01-02"), e.Location)
	}

	if err := a.Store.Add(e); err != nil {
		return time.Time{}, err
	}
	return day, nil
}
