// Package automfile loads automaton definitions from GFA files, a
// TOML-based format for describing a DFA or NFA on disk. The format
// mirrors tqw's header-first, type-discriminated layout: every GFA file
// carries a small header identifying its format version and automaton
// type before the body fields that differ between DFA and NFA.
package automfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/finlex/gofa/fa"
)

// CurrentFormat is the only GFA format version this package understands.
const CurrentFormat = "GFA1"

// Header contains the fields every GFA file must have regardless of the
// automaton type it goes on to describe.
type Header struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// dfaFile is the on-disk shape of a GFA file with Type "DFA".
type dfaFile struct {
	Header
	States       []string                     `toml:"states"`
	InputSymbols []string                     `toml:"input_symbols"`
	Transitions  map[string]map[string]string `toml:"transitions"`
	Initial      string                       `toml:"initial"`
	Final        []string                     `toml:"final"`
	AllowPartial bool                         `toml:"allow_partial"`
}

// nfaFile is the on-disk shape of a GFA file with Type "NFA". Epsilon
// transitions are written under the key "" the same way fa.NewNFA
// expects them.
type nfaFile struct {
	Header
	States       []string                       `toml:"states"`
	InputSymbols []string                       `toml:"input_symbols"`
	Transitions  map[string]map[string][]string `toml:"transitions"`
	Initial      string                         `toml:"initial"`
	Final        []string                       `toml:"final"`
}

// ScanHeader reads just enough of a GFA file to identify its type
// without committing to a DFA or NFA decode.
func ScanHeader(path string) (Header, error) {
	var h Header
	if _, err := toml.DecodeFile(path, &h); err != nil {
		return Header{}, fmt.Errorf("scan %s: %w", path, err)
	}
	if h.Format != CurrentFormat {
		return Header{}, fmt.Errorf("%s: unsupported format %q, want %q", path, h.Format, CurrentFormat)
	}
	return h, nil
}

// LoadDFA reads a GFA file of type "DFA" and constructs the DFA it
// describes.
func LoadDFA(path string) (*fa.DFA, error) {
	h, err := ScanHeader(path)
	if err != nil {
		return nil, err
	}
	if h.Type != "DFA" {
		return nil, fmt.Errorf("%s: expected type DFA, got %q", path, h.Type)
	}

	var f dfaFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var opts []fa.Option
	if f.AllowPartial {
		opts = append(opts, fa.AllowPartial())
	}
	d, err := fa.NewDFA(f.States, f.InputSymbols, f.Transitions, f.Initial, f.Final, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadNFA reads a GFA file of type "NFA" and constructs the NFA it
// describes.
func LoadNFA(path string) (*fa.NFA, error) {
	h, err := ScanHeader(path)
	if err != nil {
		return nil, err
	}
	if h.Type != "NFA" {
		return nil, fmt.Errorf("%s: expected type NFA, got %q", path, h.Type)
	}

	var f nfaFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	n, err := fa.NewNFA(f.States, f.InputSymbols, f.Transitions, f.Initial, f.Final)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// SaveDFA writes d to path as a GFA file of type "DFA", so that a
// minified automaton can be round-tripped back through LoadDFA.
func SaveDFA(path string, d *fa.DFA) error {
	f := dfaFile{
		Header:       Header{Format: CurrentFormat, Type: "DFA"},
		Initial:      d.Initial(),
		AllowPartial: d.IsPartial(),
	}
	f.States = d.States().Elements()
	f.InputSymbols = d.InputSymbols().Elements()
	f.Final = d.FinalStates().Elements()

	f.Transitions = make(map[string]map[string]string)
	for _, tr := range d.IterTransitions() {
		if f.Transitions[tr.From] == nil {
			f.Transitions[tr.From] = make(map[string]string)
		}
		f.Transitions[tr.From][tr.Symbol] = tr.To
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	enc := toml.NewEncoder(out)
	return enc.Encode(f)
}
