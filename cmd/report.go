package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/creativeminds/analytics/internal/app"
	"github.com/creativeminds/analytics/internal/domain/types"
	"github.com/creativeminds/analytics/pkg/logger"
)

// Output formats accepted by report and probe.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func newReportCommand(c *cli) *cobra.Command {
	var (
		id     int64
		format string
	)
	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Render one report to stdout",
		Long: "Render one report from a fresh extraction and print it.\n\nReports: " +
			strings.Join(service.ReportNames(), ", "),
		Example:   "  analytics report dashboard\n  analytics report proyecto --id 4 --format yaml",
		Args:      cobra.ExactArgs(1),
		ValidArgs: service.ReportNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !slices.Contains(service.ReportNames(), name) {
				return fmt.Errorf("%w: unknown report %q", ErrUsage, name)
			}
			if name == types.ReportProject && id < 1 {
				return fmt.Errorf("%w: report %q needs --id", ErrUsage, name)
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := c.openStore(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					c.log.Warn(ctx, "closing store failed", logger.Error(err))
				}
			}()

			out, err := c.newService(store).Report(ctx, name, id)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "project id for the proyecto report")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrUsage, format)
	}
}

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
