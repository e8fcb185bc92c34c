/*
Gofa is a command-line front end for the gofa finite-automata library.

Usage:

	gofa regex [flags] <pattern> <word>
	gofa minify [flags]
	gofa repl [flags]

The regex subcommand:

	-s, --symbols SYMBOLS
		Comma-separated input alphabet. If omitted, the alphabet is
		inferred from the pattern's literal characters.

Reports whether <word> is a member of the language <pattern> describes,
via a one-line message. The exit status is zero for both a match and a
non-match; it is nonzero only when the command fails.

The minify subcommand:

	-i, --in FILE
		GFA file (TOML) describing the DFA to minify. Required.

	-o, --out FILE
		Write the minified DFA back out as a GFA file. If omitted, only
		a summary is printed.

	-k, --keep-names
		Retain original state names where possible instead of
		renumbering merged states.

The repl subcommand starts an interactive session that reads words from
stdin, one per line, and reports whether each is accepted by the loaded
automaton. Type "QUIT" to exit.

	-i, --in FILE
		GFA file (TOML) describing the DFA to test against. Required.

	-c, --config FILE
		REPL preferences file (YAML). Defaults to
		~/.config/gofa/repl.yaml if present.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline where possible.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/finlex/gofa/fa"
	"github.com/finlex/gofa/fa/regex"
	"github.com/finlex/gofa/internal/automfile"
	"github.com/finlex/gofa/internal/replconfig"
	"github.com/projectdiscovery/gologger"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates the command line could not be parsed or
	// named an unknown subcommand.
	ExitUsageError

	// ExitRunError indicates an unsuccessful execution of a
	// subcommand's actual work.
	ExitRunError
)

func main() {
	returnCode := ExitSuccess
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	if len(os.Args) < 2 {
		printUsage()
		returnCode = ExitUsageError
		return
	}

	var err error
	switch os.Args[1] {
	case "regex":
		err = runRegex(os.Args[2:])
	case "minify":
		err = runMinify(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", os.Args[1])
		printUsage()
		returnCode = ExitUsageError
		return
	}

	if err != nil {
		gologger.Error().Msgf("%v", err)
		returnCode = ExitRunError
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: gofa <regex|minify|repl> [flags]")
}

func runRegex(args []string) error {
	fs := pflag.NewFlagSet("regex", pflag.ContinueOnError)
	symbolsFlag := fs.StringP("symbols", "s", "", "comma-separated input alphabet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: gofa regex [flags] <pattern> <word>")
	}
	pattern, word := rest[0], rest[1]

	var symbols []string
	if *symbolsFlag != "" {
		symbols = strings.Split(*symbolsFlag, ",")
	}

	n, err := regex.Parse(pattern, symbols)
	if err != nil {
		return fmt.Errorf("parse pattern %q: %w", pattern, err)
	}

	if n.AcceptsInput(word) {
		fmt.Printf("%q matches %q\n", word, pattern)
	} else {
		fmt.Printf("%q does not match %q\n", word, pattern)
	}
	return nil
}

func runMinify(args []string) error {
	fs := pflag.NewFlagSet("minify", pflag.ContinueOnError)
	inFlag := fs.StringP("in", "i", "", "GFA file describing the DFA to minify")
	outFlag := fs.StringP("out", "o", "", "write the minified DFA to this GFA file")
	keepNames := fs.BoolP("keep-names", "k", false, "retain original state names where possible")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inFlag == "" {
		return fmt.Errorf("--in is required")
	}

	d, err := automfile.LoadDFA(*inFlag)
	if err != nil {
		return err
	}

	before := d.States().Len()

	var opts []fa.MinifyOption
	if *keepNames {
		opts = append(opts, fa.RetainNames())
	}
	min := d.Minify(opts...)
	after := min.States().Len()

	gologger.Info().Msgf("minified %d states to %d states", before, after)

	if *outFlag != "" {
		if err := automfile.SaveDFA(*outFlag, min); err != nil {
			return err
		}
		gologger.Info().Msgf("wrote %s", *outFlag)
	}
	return nil
}

func runRepl(args []string) error {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	inFlag := fs.StringP("in", "i", "", "GFA file describing the DFA to test against")
	configFlag := fs.StringP("config", "c", filepath.Join(replConfigDir(), "repl.yaml"), "REPL preferences file")
	forceDirect := fs.BoolP("direct", "d", false, "force reading directly from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inFlag == "" {
		return fmt.Errorf("--in is required")
	}

	d, err := automfile.LoadDFA(*inFlag)
	if err != nil {
		return err
	}

	cfg, err := replconfig.Load(*configFlag)
	if err != nil {
		return err
	}

	reader, closeFn, err := newCommandReader(*forceDirect, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	for {
		line, err := reader()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch strings.ToUpper(line) {
		case "":
			continue
		case "QUIT":
			return nil
		}

		if d.AcceptsInput(line) {
			fmt.Printf("accept: %q\n", line)
		} else {
			fmt.Printf("reject: %q\n", line)
		}
	}
}

// newCommandReader returns a function that reads one line at a time,
// plus a cleanup function, choosing between a GNU-readline-backed reader
// and a direct bufio reader the same way tqi chooses between
// InteractiveCommandReader and DirectCommandReader.
func newCommandReader(forceDirect bool, cfg replconfig.Config) (func() (string, error), func(), error) {
	if forceDirect {
		br := bufio.NewReader(os.Stdin)
		return func() (string, error) {
				line, err := br.ReadString('\n')
				return strings.TrimSpace(line), err
			}, func() {
			}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create readline config: %w", err)
	}

	return func() (string, error) {
			line, err := rl.Readline()
			return strings.TrimSpace(line), err
		}, func() {
			rl.Close()
		}, nil
}

func replConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/gofa"
	}
	return filepath.Join(home, ".config/gofa")
}
