package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	whoistest "github.com/g-ocloud/Whois-Selftest-Tool"
)

// errDiagnostics marks a run that completed but found violations; main maps
// it to its own exit code without printing it.
var errDiagnostics = errors.New("validation produced diagnostics")

var verbosity int

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "whois-test",
		Short:         "Validate directory service replies against reply grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "enable debug logging (-vv for trace)")

	cmd.AddCommand(
		newValidateCmd(),
		newTypesCmd(),
		newGrammarCmd(),
		newVersionCmd(),
	)
	return cmd
}

// logger builds the slog logger for the selected verbosity, or nil for none.
func logger() *slog.Logger {
	if verbosity <= 0 {
		return nil
	}
	level := slog.LevelDebug
	if verbosity > 1 {
		level = whoistest.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
