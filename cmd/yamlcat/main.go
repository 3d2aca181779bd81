// Command yamlcat drives the scanner/parser/loader pipeline over a file
// and renders either its token stream or its loaded document tree,
// colorized the way cmd/ycat.go colorizes goccy/go-yaml's own token
// dump. Rebuilt around a cobra.Command tree (the pack's
// cue-lang-cue-trybot dependency) in place of the teacher's bare
// os.Args-indexed _main, so --safe/--tokens/--multi compose as regular
// flags instead of positional argument parsing.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/nvksv/yaml-core/lexer"
	"github.com/nvksv/yaml-core/loader"
	"github.com/nvksv/yaml-core/parser"
	"github.com/nvksv/yaml-core/printer"
	"github.com/nvksv/yaml-core/scanner"
	"github.com/nvksv/yaml-core/settings"
	"github.com/nvksv/yaml-core/yamlerr"
)

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

func newPrinter() *printer.Printer {
	p := &printer.Printer{LineNumber: true}
	p.LineNumberFormat = func(num int) string {
		fn := color.New(color.Bold, color.FgHiWhite).SprintFunc()
		return fn(fmt.Sprintf("%2d | ", num))
	}
	p.SetDefaultColorSet()
	return p
}

func newDumpCmd() *cobra.Command {
	var safe bool
	var tokensOnly bool
	var multi bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a YAML file's token stream or loaded document tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			writer := colorable.NewColorableStdout()
			p := newPrinter()

			if tokensOnly {
				toks := lexer.Tokenize(string(src))
				fmt.Fprintln(writer, p.PrintTokens(toks))
				return nil
			}

			s := settings.New()
			if safe {
				s = settings.NewSafe()
			}
			s = s.WithMultiDoc(multi || s.IsMultiDocAllowed())

			sc := scanner.NewFromString(string(src))
			ps := parser.New(sc)
			ld := loader.New(s)
			if err := ld.LoadAll(ps); err != nil {
				if se, ok := err.(*yamlerr.ScanError); ok {
					se.Source = string(src)
				}
				return err
			}
			for _, doc := range ld.Documents() {
				fmt.Fprintln(writer, string(p.PrintNode(doc.Root)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&safe, "safe", false, "use settings.NewSafe() (no aliases, single document)")
	cmd.Flags().BoolVar(&tokensOnly, "tokens", false, "print the scanner's token stream instead of the loaded tree")
	cmd.Flags().BoolVar(&multi, "multi", false, "allow loading every document in the stream, even under --safe")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "yamlcat",
		Short: "Inspect a YAML 1.2 document's tokens or loaded tree",
	}
	root.AddCommand(newDumpCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
