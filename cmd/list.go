package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/gymsched/internal/config"
	"github.com/example/gymsched/internal/schedule"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the recurring schedule, sorted by weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			entries, err := schedule.NewStore(cfg.SchedulePath).List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
			for _, e := range entries {
				tod := e.Time
				if tod == "" {
					tod = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%ss\t%s\n", e.Name, e.Location, schedule.WeekdayName(e.Weekday), tod)
			}
			return w.Flush()
		},
	}
}
