package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"swifttoo/alertwatch"
)

func (a *app) alertsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Consume broker alerts and auto-submit follow-up TOO requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := alertwatch.New(alertwatch.Config{
				Brokers:   a.cfg.Alerts.Brokers,
				GroupID:   a.cfg.Alerts.GroupID,
				Topic:     a.cfg.Alerts.Topic,
				Submitter: a.client,
				Logger:    slog.Default(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			slog.Info("alert watcher started",
				slog.Any("brokers", a.cfg.Alerts.Brokers),
				slog.String("topic", a.cfg.Alerts.Topic),
			)
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
