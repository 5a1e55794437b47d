package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	whoistest "github.com/g-ocloud/Whois-Selftest-Tool"
	"github.com/g-ocloud/Whois-Selftest-Tool/whois"
)

func newValidateCmd() *cobra.Command {
	var ruleName string
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "validate [flags] FILE...",
		Short: "Validate captured replies",
		Long: `Validate reads each captured reply and checks it against the selected
grammar rule. Diagnostics are printed one per line. Pass "-" to read a
single reply from standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []whoistest.Option{whoistest.WithLogger(logger())}
			if grammarFile != "" {
				data, err := os.ReadFile(grammarFile)
				if err != nil {
					return err
				}
				g, err := whoistest.ParseGrammar(data)
				if err != nil {
					return err
				}
				opts = append(opts, whoistest.WithGrammar(g))
			}

			found := false
			for _, path := range args {
				input, err := readInput(path)
				if err != nil {
					return err
				}
				diags, err := whoistest.ValidateResponse(ruleName, input, opts...)
				if err != nil {
					return err
				}
				for _, d := range diags {
					found = true
					if len(args) > 1 {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, d)
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), d)
					}
				}
			}
			if found {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleName, "rule", "r", "Domain Name Object query", "grammar rule to validate against")
	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "YAML grammar file (default: embedded grammar)")
	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered field value types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range whoistest.DefaultTypes().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newGrammarCmd() *cobra.Command {
	var source bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Show the active grammar rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source {
				_, err := cmd.OutOrStdout().Write(whoistest.DefaultGrammarSource())
				return err
			}
			g := whoistest.DefaultGrammar()
			if err := whoistest.CheckGrammar(g, whoistest.DefaultTypes()); err != nil {
				return err
			}
			for _, name := range ruleNames(g) {
				kind := "sequence"
				if g[name].IsChoice() {
					kind = "choice"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", name, kind)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&source, "source", false, "print the grammar YAML instead of the rule list")
	return cmd
}

func ruleNames(g whois.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
