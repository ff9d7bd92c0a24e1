package main

import (
	"github.com/spf13/cobra"

	"swifttoo"
	"swifttoo/internal/config"
)

type app struct {
	cfg    *config.Config
	client *swifttoo.Client
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "swifttoo",
		Short:         "Interact with the Swift Target of Opportunity API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.client = swifttoo.NewClient(swifttoo.ClientConfig{
				BaseURL:      cfg.API.BaseURL,
				Username:     cfg.API.Username,
				SharedSecret: cfg.API.Secret,
				Timeout:      cfg.API.Timeout,
				Debug:        cfg.API.Debug,
			})
		},
	}

	root.AddCommand(
		a.resolveCommand(),
		a.visQueryCommand(),
		a.obsQueryCommand(),
		a.planQueryCommand(),
		a.saaCommand(),
		a.guanoCommand(),
		a.uvotModeCommand(),
		a.clockCommand(),
		a.requestsCommand(),
		a.calendarCommand(),
		a.dataCommand(),
		a.tooCommand(),
		a.alertsCommand(),
	)
	return root
}
