package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"phpfmt/internal/diag"
	"phpfmt/internal/lexer"
	"phpfmt/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.php>",
	Short: "Dump the token stream of a PHP source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	if bag.Len() > 0 {
		printDiagnostics(fileSet, bag, useColor(cmd, os.Stderr))
	}

	for _, tok := range tokens {
		for _, c := range tok.Leading {
			fmt.Fprintf(os.Stdout, "%12s  %-14s %q\n", "", "Comment", c.Text)
		}
		if tok.IsLiteral() {
			fmt.Fprintf(os.Stdout, "%12s  %-14s %q\n", tok.Span, tok.Kind, tok.Text)
		} else {
			fmt.Fprintf(os.Stdout, "%12s  %-14s %s\n", tok.Span, tok.Kind, tok.Text)
		}
	}

	if bag.HasErrors() {
		return errors.New("tokens: lexical errors present")
	}
	return nil
}

// printDiagnostics writes one line per diagnostic to stderr, with the
// severity colored on terminals.
func printDiagnostics(fileSet *source.FileSet, bag *diag.Bag, colored bool) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	for _, d := range bag.Items() {
		label := d.Severity.String()
		if colored {
			switch d.Severity {
			case diag.SevError:
				label = red.Sprint(label)
			case diag.SevWarning:
				label = yellow.Sprint(label)
			}
		}
		start, _ := fileSet.Resolve(d.Primary)
		path := fileSet.Get(d.Primary.File).Path
		fmt.Fprintf(os.Stderr, "%s: %s:%d:%d: [%s] %s\n",
			label, path, start.Line, start.Col, d.Code, d.Message)
	}
}
