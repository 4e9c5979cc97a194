package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/creativeminds/analytics/internal/probe"
	"github.com/creativeminds/analytics/pkg/logger"
)

const (
	defaultProbeWorkers = 4
	defaultProbeTimeout = 30 * time.Second
)

func newProbeCommand(c *cli) *cobra.Command {
	var (
		baseURL   string
		projectID int64
		workers   int
		timeout   time.Duration
		format    string
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Call every route of a running instance and print status codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "" && format != "table" {
				if err := checkFormat(format); err != nil {
					return err
				}
			}
			ctx := cmd.Context()
			c.log.Info(ctx, "probing service",
				logger.String("base_url", baseURL),
				logger.String("prefix", c.cfg.APIPrefix),
				logger.Int("workers", workers))

			sum, runErr := probe.Run(ctx, probe.Config{
				BaseURL:   baseURL,
				Prefix:    c.cfg.APIPrefix,
				ProjectID: projectID,
				Workers:   workers,
				Timeout:   timeout,
			})
			var err error
			if format == "table" || format == "" {
				err = printProbeTable(cmd.OutOrStdout(), sum)
			} else {
				err = encode(cmd.OutOrStdout(), format, sum)
			}
			if err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:5000", "base URL of the running service")
	cmd.Flags().Int64Var(&projectID, "project-id", 0, "project id for the detail route; 0 skips it")
	cmd.Flags().IntVar(&workers, "workers", defaultProbeWorkers, "number of concurrent requests")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultProbeTimeout, "HTTP request timeout")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

func printProbeTable(w io.Writer, sum probe.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSTATUS\tDURATION\tERROR")
	for _, r := range sum.Results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Path, r.Status, r.Duration.Round(time.Millisecond), r.Err)
	}
	fmt.Fprintf(tw, "\n%d of %d routes failed in %s\n", sum.Failed, len(sum.Results), sum.Duration.Round(time.Millisecond))
	return tw.Flush()
}
