package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"swifttoo"
)

// queryFlags are the target and date selectors shared by the query commands.
type queryFlags struct {
	name     string
	ra       string
	dec      string
	radius   float64
	targetID int
	obsNum   string
	begin    string
	end      string
	length   float64
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "source name to resolve")
	cmd.Flags().StringVar(&f.ra, "ra", "", "right ascension (degrees or sexagesimal hours)")
	cmd.Flags().StringVar(&f.dec, "dec", "", "declination (degrees or sexagesimal)")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "search radius in degrees")
	cmd.Flags().IntVar(&f.targetID, "targetid", 0, "Swift target ID")
	cmd.Flags().StringVar(&f.obsNum, "obsnum", "", "11-digit observation number")
	cmd.Flags().StringVar(&f.begin, "begin", "", "range start (YYYY-MM-DD [HH:MM:SS])")
	cmd.Flags().StringVar(&f.end, "end", "", "range end")
	cmd.Flags().Float64Var(&f.length, "days", 0, "range length in days")
}

func (f *queryFlags) coords() (*swifttoo.Coords, error) {
	if strings.TrimSpace(f.ra) == "" && strings.TrimSpace(f.dec) == "" {
		return nil, nil
	}
	ra, err := swifttoo.ParseRA(f.ra)
	if err != nil {
		return nil, err
	}
	dec, err := swifttoo.ParseDec(f.dec)
	if err != nil {
		return nil, err
	}
	return &swifttoo.Coords{RA: ra, Dec: dec}, nil
}

func (f *queryFlags) dateRange() (*swifttoo.DateRange, error) {
	if f.begin == "" && f.end == "" && f.length == 0 {
		return nil, nil
	}
	r := swifttoo.DateRange{Length: f.length}
	var err error
	if f.begin != "" {
		if r.Begin, err = swifttoo.ParseTime(f.begin); err != nil {
			return nil, err
		}
	}
	if f.end != "" {
		if r.End, err = swifttoo.ParseTime(f.end); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func printWarnings(status swifttoo.Status) {
	for _, warning := range status.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
}

func (a *app) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a source name to J2000 coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.client.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s): RA=%.5f Dec=%.5f\n", target.Name, target.Resolver, target.RA, target.Dec)
			return nil
		},
	}
}

func (a *app) visQueryCommand() *cobra.Command {
	flags := &queryFlags{}
	var hires bool
	cmd := &cobra.Command{
		Use:   "visquery",
		Short: "Compute visibility windows for a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := flags.coords()
			if err != nil {
				return err
			}
			dates, err := flags.dateRange()
			if err != nil {
				return err
			}
			if dates == nil {
				return fmt.Errorf("a date range is required")
			}
			result, err := a.client.VisQuery(cmd.Context(), swifttoo.VisQuery{
				Name: flags.name, Coords: coords, Range: *dates, HiRes: hires,
			})
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&hires, "hires", false, "include occultation and SAA constraints")
	return cmd
}

func (a *app) obsQueryCommand() *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "obsquery",
		Short: "Query the as-flown observation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := flags.coords()
			if err != nil {
				return err
			}
			dates, err := flags.dateRange()
			if err != nil {
				return err
			}
			result, err := a.client.ObsQuery(cmd.Context(), swifttoo.ObsQuery{
				Name: flags.name, Coords: coords, Radius: flags.radius,
				TargetID: flags.targetID, ObsNum: flags.obsNum, Range: dates,
			})
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) planQueryCommand() *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Query the pre-planned science timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := flags.coords()
			if err != nil {
				return err
			}
			dates, err := flags.dateRange()
			if err != nil {
				return err
			}
			result, err := a.client.PlanQuery(cmd.Context(), swifttoo.PlanQuery{
				Name: flags.name, Coords: coords, Radius: flags.radius,
				TargetID: flags.targetID, ObsNum: flags.obsNum, Range: dates,
			})
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) saaCommand() *cobra.Command {
	flags := &queryFlags{}
	var bat bool
	cmd := &cobra.Command{
		Use:   "saa",
		Short: "List South Atlantic Anomaly passages",
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := flags.dateRange()
			if err != nil {
				return err
			}
			if dates == nil {
				return fmt.Errorf("a date range is required")
			}
			result, err := a.client.SAA(cmd.Context(), swifttoo.SAAQuery{Range: *dates, BAT: bat})
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&bat, "bat", false, "use the BAT definition of the anomaly")
	return cmd
}

func (a *app) guanoCommand() *cobra.Command {
	flags := &queryFlags{}
	var triggerTime, triggerType string
	var subThreshold bool
	var limit int
	cmd := &cobra.Command{
		Use:   "guano",
		Short: "Query commanded BAT event data dumps",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := swifttoo.GUANOQuery{
				TriggerType:  triggerType,
				SubThreshold: subThreshold,
				Limit:        limit,
			}
			if triggerTime != "" {
				parsed, err := swifttoo.ParseTime(triggerTime)
				if err != nil {
					return err
				}
				query.TriggerTime = &parsed
			}
			dates, err := flags.dateRange()
			if err != nil {
				return err
			}
			query.Range = dates

			result, err := a.client.GUANO(cmd.Context(), query)
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&triggerTime, "triggertime", "", "exact trigger time")
	cmd.Flags().StringVar(&triggerType, "triggertype", "", "trigger type, e.g. GRB")
	cmd.Flags().BoolVar(&subThreshold, "subthreshold", false, "include subthreshold triggers")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries")
	return cmd
}

func (a *app) uvotModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uvotmode <mode>",
		Short: "Show the filter table of a UVOT mode word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := swifttoo.ParseUVOTMode(args[0])
			if err != nil {
				return err
			}
			result, err := a.client.UVOTModeLookup(cmd.Context(), mode)
			if err != nil {
				return err
			}
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
}

func (a *app) clockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clock <utctime>",
		Short: "Fetch the spacecraft clock correction for a UTC time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := swifttoo.ParseTime(args[0])
			if err != nil {
				return err
			}
			correction, err := a.client.ClockCorrect(cmd.Context(), t)
			if err != nil {
				return err
			}
			fmt.Printf("UTC:   %s\nMET:   %.6f\nUTCF:  %.6f\nSwift: %s\n",
				correction.UTC.Format(time.RFC3339),
				correction.MET,
				correction.UTCF,
				correction.SwiftTime().Format(time.RFC3339),
			)
			return nil
		},
	}
}

func (a *app) requestsCommand() *cobra.Command {
	flags := &queryFlags{}
	var year, limit, tooID int
	var detail bool
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List submitted TOO requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := flags.coords()
			if err != nil {
				return err
			}
			result, err := a.client.TOORequests(cmd.Context(), swifttoo.TOORequestsQuery{
				TOOID: tooID, Year: year, Limit: limit, Detail: detail,
				Name: flags.name, Coords: coords, Radius: flags.radius,
			})
			if err != nil {
				return err
			}
			printWarnings(result.Status)
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "restrict to a calendar year")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries")
	cmd.Flags().IntVar(&tooID, "too-id", 0, "fetch a single TOO by ID")
	cmd.Flags().BoolVar(&detail, "detail", false, "fetch full request bodies")
	return cmd
}

func (a *app) calendarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <too-id>",
		Short: "Show the planned visits of an approved TOO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0], "TOO ID")
			if err != nil {
				return err
			}
			result, err := a.client.Calendar(cmd.Context(), id)
			if err != nil {
				return err
			}
			swifttoo.RenderTable(os.Stdout, result)
			return nil
		},
	}
}

func (a *app) dataCommand() *cobra.Command {
	var obsNum, mirror, outdir string
	var match []string
	var clobber, quicklook, listOnly bool
	cmd := &cobra.Command{
		Use:   "data",
		Short: "List or download the data products of an observation",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := swifttoo.DataQuery{
				ObsNum:    obsNum,
				Quicklook: quicklook,
				Mirror:    mirror,
				Match:     match,
			}
			if listOnly {
				manifest, err := a.client.DataManifest(cmd.Context(), query)
				if err != nil {
					return err
				}
				swifttoo.RenderTable(os.Stdout, manifest)
				return nil
			}
			manifest, err := a.client.DownloadData(cmd.Context(), query, swifttoo.DownloadOptions{
				Outdir:  outdir,
				Clobber: clobber,
			})
			if err != nil {
				return err
			}
			printWarnings(manifest.Status)
			fmt.Printf("downloaded %d files for %s\n", len(manifest.Files), manifest.ObsNum)
			return nil
		},
	}
	cmd.Flags().StringVar(&obsNum, "obsnum", "", "11-digit observation number")
	cmd.Flags().StringVar(&mirror, "mirror", a.cfg.Download.Mirror, "archive mirror: heasarc, uksdc, itsdc or aws")
	cmd.Flags().StringVar(&outdir, "outdir", a.cfg.Download.Outdir, "download directory")
	cmd.Flags().StringSliceVar(&match, "match", nil, "glob patterns to select files")
	cmd.Flags().BoolVar(&clobber, "clobber", a.cfg.Download.Clobber, "overwrite existing files")
	cmd.Flags().BoolVar(&quicklook, "quicklook", a.cfg.Download.Quicklook, "fetch quicklook products")
	cmd.Flags().BoolVar(&listOnly, "list", false, "list the manifest without downloading")
	return cmd
}
