package booking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/example/gymsched/internal/brp"
	"github.com/example/gymsched/internal/schedule"
)

// Service is the slice of the remote API the run loop needs.
type Service interface {
	BusinessUnitByName(ctx context.Context, name string) (brp.BusinessUnit, error)
	GroupActivities(ctx context.Context, businessUnitID int64, day time.Time, loc *time.Location) ([]brp.GroupActivity, error)
	Login(ctx context.Context, creds brp.Credentials) (brp.Authorization, error)
	Bookings(ctx context.Context, auth brp.Authorization) ([]brp.Booking, error)
	Book(ctx context.Context, activity brp.GroupActivity, auth brp.Authorization) (*brp.Booking, error)
}

// Runner evaluates every schedule entry once against the live listing and
// books what is currently bookable. One Run per process invocation; the
// tool is meant to be driven by cron or a timer unit.
type Runner struct {
	Store  *schedule.Store
	Client Service
	Creds  brp.Credentials
	Loc    *time.Location
	Policy Policy
	Log    *slog.Logger
	Out    io.Writer
}

// Run processes entries sequentially. Remote lookup failures (login,
// listings, bookings) abort the run; per-entry conditions are reported or
// silently skipped and never stop the remaining entries.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.run(ctx); err != nil {
		r.Log.Error("run aborted", slog.Any("err", err))
		return err
	}
	return nil
}

func (r *Runner) run(ctx context.Context) error {
	auth, err := r.Client.Login(ctx, r.Creds)
	if err != nil {
		return err
	}
	existing, err := r.Client.Bookings(ctx, auth)
	if err != nil {
		return err
	}
	booked := make(map[int64]bool, len(existing))
	for _, b := range existing {
		booked[b.GroupActivity.ID] = true
	}

	entries, err := r.Store.Load()
	if err != nil {
		return err
	}

	now := time.Now().In(r.Loc)
	for _, e := range entries {
		if err := r.runEntry(ctx, e, auth, booked, now); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runEntry(ctx context.Context, e schedule.Entry, auth brp.Authorization, booked map[int64]bool, now time.Time) error {
	day := NextOccurrence(e.Weekday, now, r.Policy)
	date := day.Format("2006-01-02")
	name, location := displayName(e.Name), displayName(e.Location)

	unit, err := r.Client.BusinessUnitByName(ctx, e.Location)
	if err != nil {
		return err
	}
	listing, err := r.Client.GroupActivities(ctx, unit.ID, day, r.Loc)
	if err != nil {
		return err
	}

	activity, found := Match(listing, e.Name, e.Time, r.Loc)
	outcome := Evaluate(activity, found, booked, now, r.Policy)
	r.Log.Debug("evaluated entry",
		slog.String("name", e.Name),
		slog.String("location", e.Location),
		slog.String("date", date),
		slog.String("outcome", outcome.String()))

	switch outcome {
	case NotFound:
		fmt.Fprintf(r.Out, "%s is not scheduled at %s %s.\n", name, location, date)
	case Cancelled:
		fmt.Fprintf(r.Out, "%s at %s is cancelled %s.\n", name, location, date)
	case TooEarly, AlreadyBooked, WindowExpired:
		// Expected steady state; nothing to tell the user.
	case Full:
		fmt.Fprintf(r.Out, "%s at %s %s is fully booked. There %s on the waiting list.\n",
			name, location, date, pluralizePeople(activity.Slots.InWaitingList))
	case Book:
		booking, err := r.Client.Book(ctx, activity, auth)
		if err != nil {
			return err
		}
		if booking == nil {
			// Submission rejected by the remote; re-evaluated next run.
			r.Log.Debug("booking rejected", slog.Int64("activity_id", activity.ID))
			return nil
		}
		start := booking.Duration.Start.In(r.Loc).Format("2006-01-02 15:04")
		fmt.Fprintf(r.Out, "Booked %s at %s %s!\n", name, location, start)
	}
	return nil
}

func pluralizePeople(n int) string {
	if n == 1 {
		return "is 1 person"
	}
	return fmt.Sprintf("are %d people", n)
}

func displayName(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
