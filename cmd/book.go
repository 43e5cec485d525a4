package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/gymsched/internal/booking"
	"github.com/example/gymsched/internal/brp"
	"github.com/example/gymsched/internal/config"
	"github.com/example/gymsched/internal/credentials"
	"github.com/example/gymsched/internal/schedule"
)

func newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Book every schedule entry whose booking window is open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: parseLogLevel(cfg.LogLevel),
			}))

			creds, err := credentials.Load(cfg.CredentialsPath, cfg.CredentialsKey)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			runner := &booking.Runner{
				Store:  schedule.NewStore(cfg.SchedulePath),
				Client: brp.New(cfg.APIBaseURL, cfg.APITimeout),
				Creds:  creds,
				Loc:    cfg.Location,
				Policy: booking.Policy{SearchFromTomorrow: cfg.SearchFromTomorrow, Window: cfg.BookingWindow},
				Log:    log,
				Out:    os.Stdout,
			}
			return runner.Run(ctx)
		},
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
