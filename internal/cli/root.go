package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "eventorbit",
		Short:             "Recurring event schedules from the terminal",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
	cmd.SetHelpFunc(colorizedHelpFunc())

	cmd.AddCommand(
		scheduleCmd,
		draftCmd,
		configCmd,
		completionCmd,
		versionCmd,
	)
	return cmd
}

// setupLogging points the global zerolog logger at stderr. The level is
// tightened to the configured one once the config is loaded.
func setupLogging(cmd *cobra.Command, _ []string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	errOut := cmd.ErrOrStderr()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: errOut, NoColor: !isTerminal(errOut)})

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	return nil
}

// Execute runs the root command. Cancelling ctx aborts pending API calls.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = rootCmd.ErrOrStderr().Write([]byte(Error("error: "+err.Error()) + "\n"))
	}
	return err
}
