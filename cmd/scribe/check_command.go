package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scribe/internal/deps"
	"scribe/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var network bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check external binaries and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			statuses := preflight.CheckSystemDeps(cfg)
			depRows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				detail := s.Path
				if !s.Available {
					detail = s.Detail
				}
				depRows = append(depRows, []string{s.Name, s.Command, dependencyState(s), detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Status", "Detail"}, depRows, nil))

			var modelURL string
			if network {
				acq := newAcquirer(cfg, logger, false)
				if modelURL, err = acq.URL(cfg.Model.Name); err != nil {
					return err
				}
			}
			results := preflight.RunAll(cmd.Context(), cfg, modelURL)
			checkRows := make([][]string, 0, len(results))
			for _, r := range results {
				state := color.GreenString("ok")
				if !r.Passed {
					state = color.RedString("failed")
				}
				checkRows = append(checkRows, []string{r.Name, state, r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
			}
			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&network, "network", false, "Also check that the configured model download URL is reachable")
	return cmd
}

func dependencyState(s deps.Status) string {
	switch {
	case s.Available:
		return color.GreenString("ok")
	case s.Optional:
		return color.YellowString("optional, missing")
	default:
		return color.RedString("missing")
	}
}
