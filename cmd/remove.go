package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/gymsched/internal/config"
	"github.com/example/gymsched/internal/schedule"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> [location] [weekday] [time]",
		Short: "Remove a class from the schedule",
		Long: `Remove a class from the schedule.

The name matches as a substring; location, weekday and time narrow the
search when several entries share a name. Exactly one entry must match.`,
		Args: cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			name := cleanArg(args[0])
			var location, timeOfDay string
			var weekday int
			if len(args) > 1 {
				location = cleanArg(args[1])
			}
			if len(args) > 2 {
				weekday, err = schedule.ParseWeekday(args[2])
				if err != nil {
					return err
				}
			}
			if len(args) > 3 {
				timeOfDay = cleanArg(args[3])
			}

			removed, err := schedule.NewStore(cfg.SchedulePath).Remove(name, location, weekday, timeOfDay)
			if err != nil {
				return err
			}
			if removed.Time != "" {
				fmt.Printf("Removed %s at %s on %ss at %s from the schedule.\n",
					removed.Name, removed.Location, schedule.WeekdayName(removed.Weekday), removed.Time)
			} else {
				fmt.Printf("Removed %s at %s on %ss from the schedule.\n",
					removed.Name, removed.Location, schedule.WeekdayName(removed.Weekday))
			}
			return nil
		},
	}
}
