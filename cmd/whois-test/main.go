// Command whois-test validates directory service replies against the reply
// grammars.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitOK    = 0 // success, no diagnostics
	exitDiags = 1 // validation produced diagnostics
	exitError = 2 // usage, grammar, or I/O error
)

func main() {
	os.Exit(run())
}

func run() int {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errDiagnostics):
		return exitDiags
	default:
		fmt.Fprintln(os.Stderr, "whois-test:", err)
		return exitError
	}
}
