// Copyright © 2025 The tinysexpr authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/shack/tinysexpr/diagnostic"
	"github.com/shack/tinysexpr/parser/lexer"
	"github.com/shack/tinysexpr/parser/parsecparser"
	"github.com/shack/tinysexpr/parser/rdparser"
	"github.com/shack/tinysexpr/sexpr"
)

var (
	readExpression bool
	readCount      bool
	readComment    string
	readBackend    string
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read s-expressions",
	Long: `Read s-expression source supplied via the command line, files, or
stdin and print the canonical form of each expression.`,
	Run: func(cmd *cobra.Command, args []string) {
		reader, err := newCLIReader()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sources, err := readSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, src := range sources {
			vals, err := reader.Read(src.name, src.r)
			if err != nil {
				renderReadError(os.Stderr, err)
				os.Exit(1)
			}
			if readCount {
				fmt.Printf("%s: %d\n", src.name, len(vals))
				continue
			}
			for _, v := range vals {
				fmt.Println(v)
			}
		}
	},
}

type source struct {
	name string
	r    io.Reader
}

// readSources maps command arguments to named readers.  With no arguments
// stdin is read.
func readSources(args []string) ([]*source, error) {
	if len(args) == 0 {
		return []*source{{name: "stdin", r: os.Stdin}}, nil
	}
	sources := make([]*source, len(args))
	if readExpression {
		for i := range args {
			name := fmt.Sprintf("expr%d", i+1)
			sources[i] = &source{name: name, r: strings.NewReader(args[i])}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			return nil, err
		}
		sources[i] = &source{name: path, r: strings.NewReader(string(b))}
	}
	return sources, nil
}

func newCLIReader() (sexpr.Reader, error) {
	syntax, err := cliSyntax()
	if err != nil {
		return nil, err
	}
	switch readBackend {
	case "rd":
		return rdparser.NewReader(rdparser.WithSyntax(syntax)), nil
	case "parsec":
		if readComment != ";" {
			return nil, fmt.Errorf("the parsec backend only supports the default syntax")
		}
		return parsecparser.NewReader(nil), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", readBackend)
	}
}

func cliSyntax() (*lexer.Syntax, error) {
	syntax := lexer.DefaultSyntax()
	c, size := utf8.DecodeRuneInString(readComment)
	if c == utf8.RuneError || size != len(readComment) {
		return nil, fmt.Errorf("comment must be a single character: %q", readComment)
	}
	syntax.Comment = c
	return syntax, syntax.Validate()
}

func renderReadError(w io.Writer, err error) {
	r := &diagnostic.Renderer{Color: diagnostic.ParseColorMode(colorFlag)}
	_ = r.Render(w, diagnostic.FromError(err))
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolVarP(&readExpression, "expression", "e", false,
		"Interpret arguments as s-expression text")
	readCmd.Flags().BoolVarP(&readCount, "count", "c", false,
		"Print the number of expressions read instead of their forms")
	readCmd.Flags().StringVar(&readComment, "comment", ";",
		"Character that starts a line comment")
	readCmd.Flags().StringVar(&readBackend, "backend", "rd",
		`Reader implementation: "rd" or "parsec"`)
}
