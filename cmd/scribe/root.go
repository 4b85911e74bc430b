package main

import (
	"github.com/spf13/cobra"
)

type runFlags struct {
	audio              string
	model              string
	language           string
	suppressLangTokens bool
	strictExit         bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Transcribe an audio file with Whisper into a time-stamped text file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscription(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	registerRunFlags(rootCmd, &flags)

	rootCmd.AddCommand(newModelsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

func registerRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.audio, "audio", defaultAudioPath, "Input audio file")
	cmd.Flags().StringVar(&flags.model, "model", "tiny", "Whisper model name (overrides model.name)")
	cmd.Flags().StringVar(&flags.language, "language", "", "Language hint such as ru or en; empty enables auto-detection")
	cmd.Flags().BoolVar(&flags.suppressLangTokens, "suppress-lang-tokens", false, "Suppress language-marker tokens during decoding")
	cmd.Flags().BoolVar(&flags.strictExit, "strict-exit", false, "Exit with a stage-specific non-zero status on failure")
}
