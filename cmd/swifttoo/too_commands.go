package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"swifttoo"
)

func parsePositiveInt(raw, label string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("bad %s %q", label, raw)
	}
	return value, nil
}

func (a *app) tooCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "too",
		Short: "Submit and manage TOO requests",
	}
	cmd.AddCommand(
		a.tooSubmitCommand(false),
		a.tooSubmitCommand(true),
		a.tooGetCommand(),
		a.tooCancelCommand(),
		a.tooCommandsCommand(),
	)
	return cmd
}

func registerTOOFlags(cmd *cobra.Command, req *swifttoo.TOORequest, raStr, decStr, xrtMode, uvotMode, triggerTime *string) {
	cmd.Flags().StringVar(&req.SourceName, "source", "", "source name")
	cmd.Flags().StringVar(&req.SourceType, "type", "", "source type, e.g. Supernova, GRB, AGN")
	cmd.Flags().StringVar(raStr, "ra", "", "right ascension")
	cmd.Flags().StringVar(decStr, "dec", "", "declination")
	cmd.Flags().Float64Var(&req.PosErr, "poserr", 0, "position error in arcminutes")
	cmd.Flags().StringVar(&req.Instrument, "instrument", req.Instrument, "primary instrument: XRT, BAT or UVOT")
	cmd.Flags().IntVar(&req.Urgency, "urgency", req.Urgency, "urgency 1 (hours) to 4 (weeks)")
	cmd.Flags().StringVar(&req.ObsType, "obs-type", "", "Spectroscopy, Light Curve, Position or Timing")
	cmd.Flags().Float64Var(&req.ExpTimePerVisit, "exposure", 0, "exposure per visit in seconds")
	cmd.Flags().StringVar(&req.ExpTimeJust, "exposure-just", "", "exposure time justification")
	cmd.Flags().StringVar(&req.ScienceJust, "science-just", "", "science justification")
	cmd.Flags().StringVar(&req.ImmediateObjective, "objective", "", "immediate objective")
	cmd.Flags().IntVar(&req.NumOfVisits, "visits", req.NumOfVisits, "number of visits")
	cmd.Flags().StringVar(&req.MonitoringFreq, "cadence", "", "monitoring cadence, e.g. \"2 days\"")
	cmd.Flags().Float64Var(&req.OptMag, "opt-mag", 0, "optical magnitude estimate")
	cmd.Flags().Float64Var(&req.XRTCountRate, "xrt-rate", 0, "XRT count rate estimate (c/s)")
	cmd.Flags().StringVar(xrtMode, "xrt-mode", "", "XRT mode: Auto, WT or PC")
	cmd.Flags().StringVar(uvotMode, "uvot-mode", "", "UVOT mode word, e.g. 0x30ed")
	cmd.Flags().StringVar(&req.GRBDetector, "grb-detector", "", "detecting mission for GRBs")
	cmd.Flags().StringVar(triggerTime, "grb-triggertime", "", "GRB trigger time")
	cmd.Flags().BoolVar(&req.Debug, "debug", false, "submit in debug mode")
}

func (a *app) tooSubmitCommand(validateOnly bool) *cobra.Command {
	use, short := "submit", "Validate and submit a TOO request"
	if validateOnly {
		use, short = "validate", "Validate a TOO request server-side without scheduling"
	}

	req := swifttoo.NewTOORequest()
	var raStr, decStr, xrtMode, uvotMode, triggerTime string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.RA, err = swifttoo.ParseRA(raStr); err != nil {
				return err
			}
			if req.Dec, err = swifttoo.ParseDec(decStr); err != nil {
				return err
			}
			if xrtMode != "" {
				if req.XRTMode, err = swifttoo.ParseXRTMode(xrtMode); err != nil {
					return err
				}
			}
			if uvotMode != "" {
				if req.UVOTMode, err = swifttoo.ParseUVOTMode(uvotMode); err != nil {
					return err
				}
			}
			if triggerTime != "" {
				parsed, err := swifttoo.ParseTime(triggerTime)
				if err != nil {
					return err
				}
				req.GRBTriggerTime = &swifttoo.Time{Time: parsed}
			}

			var status *swifttoo.Status
			if validateOnly {
				status, err = a.client.ServerValidateTOO(cmd.Context(), req)
			} else {
				status, err = a.client.SubmitTOO(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			printWarnings(*status)
			if status.TOOID > 0 {
				fmt.Printf("%s: TOO %d (job %d)\n", status.State, status.TOOID, status.JobNumber)
			} else {
				fmt.Printf("%s (job %d)\n", status.State, status.JobNumber)
			}
			return nil
		},
	}
	registerTOOFlags(cmd, req, &raStr, &decStr, &xrtMode, &uvotMode, &triggerTime)
	return cmd
}

func (a *app) tooGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <too-id>",
		Short: "Fetch an existing TOO request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "TOO ID")
			if err != nil {
				return err
			}
			req, err := a.client.GetTOO(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("TOO %d: %s (%s) at (%.5f, %.5f), %s, urgency %d, %g s\n",
				req.TOOID, req.SourceName, req.SourceType, req.RA, req.Dec,
				req.ObsType, req.Urgency, req.Exposure)
			return nil
		},
	}
}

func (a *app) tooCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <too-id>",
		Short: "Withdraw a submitted TOO request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "TOO ID")
			if err != nil {
				return err
			}
			status, err := a.client.CancelTOO(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s: TOO %d cancelled\n", status.State, id)
			return nil
		},
	}
}

func (a *app) tooCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands <too-id>",
		Short: "Show the uplink command history of a TOO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "TOO ID")
			if err != nil {
				return err
			}
			result, err := a.client.TOOCommands(cmd.Context(), id)
			if err != nil {
				return err
			}
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
}
