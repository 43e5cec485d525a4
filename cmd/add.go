package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/gymsched/internal/booking"
	"github.com/example/gymsched/internal/brp"
	"github.com/example/gymsched/internal/config"
	"github.com/example/gymsched/internal/schedule"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <location> <weekday> [time]",
		Short: "Add a recurring class to the schedule",
		Long: `Add a recurring class to the schedule.

The class must actually exist at its next occurrence: the remote listing is
checked before anything is persisted, so a typo in the name or location is
caught immediately instead of on every future booking run.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			entry := schedule.Entry{
				Name:     cleanArg(args[0]),
				Location: cleanArg(args[1]),
			}
			entry.Weekday, err = schedule.ParseWeekday(args[2])
			if err != nil {
				return err
			}
			if len(args) == 4 {
				entry.Time = cleanArg(args[3])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			adder := &booking.Adder{
				Store:  schedule.NewStore(cfg.SchedulePath),
				Client: brp.New(cfg.APIBaseURL, cfg.APITimeout),
				Loc:    cfg.Location,
				Policy: booking.Policy{SearchFromTomorrow: cfg.SearchFromTomorrow, Window: cfg.BookingWindow},
			}
			if _, err := adder.Add(ctx, entry); err != nil {
				return err
			}

			if entry.Time != "" {
				fmt.Printf("Added %s at %s on %ss at %s to the schedule.\n",
					entry.Name, entry.Location, schedule.WeekdayName(entry.Weekday), entry.Time)
			} else {
				fmt.Printf("Added %s at %s on %ss to the schedule.\n",
					entry.Name, entry.Location, schedule.WeekdayName(entry.Weekday))
			}
			return nil
		},
	}
}
