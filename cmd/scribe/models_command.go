package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scribe/internal/modelstore"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage cached Whisper model weights",
	}
	modelsCmd.AddCommand(newModelsListCommand(ctx))
	modelsCmd.AddCommand(newModelsPullCommand(ctx))
	return modelsCmd
}

func newModelsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known models and their cache state",
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
			acq := newAcquirer(cfg, logger, false)

			specs := modelstore.Specs()
			rows := make([][]string, 0, len(specs))
			for _, spec := range specs {
				size := "-"
				cached := acq.Cached(spec.Name)
				if cached {
					if info, err := os.Stat(acq.Path(spec.Name)); err == nil {
						size = humanize.IBytes(uint64(info.Size()))
					}
				}
				rows = append(rows, []string{spec.Name, yesNo(spec.Multilingual()), yesNo(cached), size})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Model", "Multilingual", "Cached", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Models directory: %s\n", acq.Dir())
			return nil
		},
	}
}

func newModelsPullCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name>...",
		Short: "Download model weights into the models directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			for _, name := range args {
				if _, ok := modelstore.Lookup(name); !ok {
					return modelNotFound(name)
				}
			}

			acq := newAcquirer(cfg, logger, progressEnabled())
			out := cmd.OutOrStdout()
			for _, name := range args {
				path, err := acq.Ensure(cmd.Context(), name)
				if err != nil {
					return fmt.Errorf("pull %s: %w", name, err)
				}
				fmt.Fprintf(out, "%s %s → %s\n", color.GreenString("ready"), name, path)
			}
			return nil
		},
	}
}
