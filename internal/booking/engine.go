package booking

import (
	"time"

	"github.com/example/gymsched/internal/brp"
)

// Outcome is the eligibility decision for one schedule entry on one
// occurrence. Exactly one outcome applies per evaluation.
type Outcome int

const (
	// NotFound: no class in the day's listing matched the entry.
	NotFound Outcome = iota
	// Cancelled: the class is cancelled. Terminal; no booking is attempted
	// on a cancelled class.
	Cancelled
	// TooEarly: booking has not opened yet. Expected steady state when the
	// tool runs ahead of the booking window; skipped silently.
	TooEarly
	// AlreadyBooked: the user already holds a booking for this occurrence.
	AlreadyBooked
	// WindowExpired: booking opened more than Policy.Window ago; a slot
	// this stale is not worth contending for.
	WindowExpired
	// Full: no slots left; reported with the waiting-list length.
	Full
	// Book: all checks passed, submit a booking.
	Book
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not_found"
	case Cancelled:
		return "cancelled"
	case TooEarly:
		return "too_early"
	case AlreadyBooked:
		return "already_booked"
	case WindowExpired:
		return "window_expired"
	case Full:
		return "full"
	case Book:
		return "book"
	}
	return "unknown"
}

// Evaluate runs the eligibility checks in order and returns the first that
// applies. booked is the set of group-activity ids the user already holds
// bookings for; now is the evaluation instant.
func Evaluate(activity brp.GroupActivity, found bool, booked map[int64]bool, now time.Time, p Policy) Outcome {
	if !found {
		return NotFound
	}
	if activity.Cancelled {
		return Cancelled
	}
	if now.Before(activity.BookableEarliest) {
		return TooEarly
	}
	if booked[activity.ID] {
		return AlreadyBooked
	}
	if p.Window > 0 && now.After(activity.BookableEarliest.Add(p.Window)) {
		return WindowExpired
	}
	if activity.Slots.LeftToBook == 0 {
		return Full
	}
	return Book
}
