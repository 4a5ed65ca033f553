// Copyright © 2025 The tinysexpr authors

// Package repl provides an interactive s-expression reader loop.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/shack/tinysexpr/parser/lexer"
	"github.com/shack/tinysexpr/parser/rdparser"
	"github.com/shack/tinysexpr/parser/token"
	"github.com/shack/tinysexpr/sexpr"
)

type config struct {
	stdin   io.ReadCloser
	stderr  io.WriteCloser
	syntax  *lexer.Syntax
	handler sexpr.AtomHandler
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	if config.syntax == nil {
		config.syntax = lexer.DefaultSyntax()
	}
	if config.handler == nil {
		config.handler = sexpr.TextHandler
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithSyntax sets the delimiter and comment configuration used to lex input.
func WithSyntax(syntax *lexer.Syntax) Option {
	return func(c *config) {
		c.syntax = syntax
	}
}

// WithAtomHandler sets the handler applied to every atom read.
func WithAtomHandler(handler sexpr.AtomHandler) Option {
	return func(c *config) {
		c.handler = handler
	}
}

// Run reads expressions interactively and echoes their canonical form until
// input is exhausted.
func Run(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	if err := cfg.syntax.Validate(); err != nil {
		return err
	}

	stderr := io.Writer(os.Stderr)
	if cfg.stderr != nil {
		stderr = cfg.stderr
	}

	p := rdparser.NewInteractive(nil, rdparser.WithAtomHandler(cfg.handler))
	p.SetPrompts(prompt, strings.Repeat(" ", len(prompt)))

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Stdout:            stderr,
		Stderr:            stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       histFile,
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	p.Read = func() []*token.Token {
		rl.SetPrompt(p.Prompt())
		for {
			line, err := rl.ReadSlice()
			if err != nil && err != readline.ErrInterrupt {
				return []*token.Token{{
					Type: token.EOF,
					Text: "",
				}}
			}
			if err == readline.ErrInterrupt {
				continue
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			return lexLine(line, cfg.syntax)
		}
	}

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(stderr, err) //nolint:errcheck // best-effort error display
			continue
		}
		fmt.Fprintln(stderr, expr) //nolint:errcheck // best-effort REPL output
	}
	return nil
}

// lexLine tokenizes a single line of input.  A comment token is appended so a
// line ending in a bare atom parses without waiting for the next line.
func lexLine(line []byte, syntax *lexer.Syntax) []*token.Token {
	var tokens []*token.Token
	scanner := token.NewScanner("stdin", bytes.NewReader(line))
	lex := lexer.NewSyntax(scanner, syntax)
	for {
		tok := lex.ReadToken()
		if len(tok) != 1 {
			panic("bad tokens")
		}
		if tok[0].Type == token.EOF || tok[0].Type == token.ERROR {
			if tok[0].Type == token.ERROR {
				tokens = append(tokens, tok...)
			}
			return append(tokens, &token.Token{
				Type:   token.COMMENT,
				Text:   "",
				Source: tok[0].Source,
			})
		}
		tokens = append(tokens, tok...)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tinysexpr_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to owner read/write.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // best-effort cleanup
	_ = os.Chmod(path, 0600)
}
