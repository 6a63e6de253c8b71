// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package docopt derives a command-line parser from a program's usage text.
//
// The text following "Usage:" (up to the first blank line) describes the valid
// invocations:
//
//	Usage:
//	  naval_fate ship new <name>...
//	  naval_fate ship <name> move <x> <y> [--speed=<kn>]
//	  naval_fate -h | --help
//
// and lines starting with '-' anywhere in the text describe options, their
// short and long forms, whether they take a value and its default:
//
//	Options:
//	  -h --help     Show this screen.
//	  --speed=<kn>  Speed in knots [default: 10].
//
// Matching an argument vector against the text yields an Opts map binding every
// option, argument and command name to a Value.
package docopt

import (
	"errors"
	"fmt"
	"strings"
)

// NewParser returns a Parser with default settings: options may appear anywhere,
// help and version flags are bound like any other option.
func NewParser() *Parser {
	return &Parser{
		logger: discardLogger,
	}
}

// Parse matches argv against doc. optionsFirst stops option recognition at the
// first positional argument.
func Parse(doc string, argv []string, optionsFirst bool) (Opts, error) {
	p := NewParser()
	p.optionsFirst = optionsFirst

	return p.Parse(doc, argv)
}

// ParseArgs matches argv against doc with help handling enabled: a -h or --help
// flag on the command line makes it return ErrHelpRequested. When version is not
// empty, --version makes it return ErrVersionRequested.
func ParseArgs(doc string, argv []string, version string) (Opts, error) {
	p := NewParser()
	p.help = true
	p.version = version

	return p.Parse(doc, argv)
}

// Parse parses doc and matches argv against it.
func (p *Parser) Parse(doc string, argv []string) (Opts, error) {
	prog, err := p.ParseDoc(doc)
	if err != nil {
		return nil, err
	}

	return prog.Match(argv)
}

// ParseDoc parses doc into a Program. The returned error wraps ErrLanguage.
func (p *Parser) ParseDoc(doc string) (*Program, error) {
	prog, err := p.parseDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLanguage, err)
	}

	return prog, nil
}

func (p *Parser) parseDoc(doc string) (*Program, error) {
	usage, err := usageSection(doc)
	if err != nil {
		return nil, err
	}
	formal, err := formalUsage(usage)
	if err != nil {
		return nil, err
	}
	table, err := buildOptionTable(doc)
	if err != nil {
		return nil, err
	}
	pattern, err := parsePattern(formal, table)
	if err != nil {
		return nil, err
	}
	fixed := fixPattern(pattern, table)
	p.logger.Debug("parsed docstring",
		"usage", formal,
		"options", table.Len(),
		"pattern", fixed.String())

	return &Program{
		parser:  p,
		usage:   usage,
		options: table,
		pattern: pattern,
		fixed:   fixed,
	}, nil
}

// Usage returns the usage section of the docstring, "Usage:" included
func (prog *Program) Usage() string {
	return prog.usage
}

// Version returns the version string of the Parser the Program was built by
func (prog *Program) Version() string {
	return prog.parser.version
}

// Options returns the option table: options from the Options section followed by
// those first met in the usage pattern.
func (prog *Program) Options() []Option {
	return prog.options.Options()
}

// Pattern returns the tree the usage section was parsed into
func (prog *Program) Pattern() Pattern {
	return prog.pattern
}

// Fixed returns the tree argument vectors are matched against: the options
// placeholder resolved and repeating leaves given accumulating defaults.
func (prog *Program) Fixed() Pattern {
	return prog.fixed
}

// Match matches argv against the Program. Errors caused by argv wrap ErrUser;
// ErrHelpRequested and ErrVersionRequested are returned as is.
func (prog *Program) Match(argv []string) (Opts, error) {
	opts, err := prog.match(argv)
	if err != nil {
		if errors.Is(err, ErrHelpRequested) || errors.Is(err, ErrVersionRequested) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUser, err)
	}

	return opts, nil
}

func (prog *Program) match(argv []string) (Opts, error) {
	optionsFirst := prog.parser.optionsFirst
	table := prog.options.Clone()

	normalized, err := disambiguate(argv, table, optionsFirst)
	if err != nil {
		return nil, err
	}
	leaves, err := parseArgv(normalized, table, optionsFirst)
	if err != nil {
		return nil, err
	}
	if err = prog.extras(leaves); err != nil {
		return nil, err
	}

	matched, left, collected := matchPattern(prog.fixed, leaves, nil)
	prog.parser.logger.Debug("matched argv",
		"argv", argv,
		"leaves", len(leaves),
		"matched", matched,
		"left", len(left))
	if !matched {
		return nil, ErrPatternNotMatched
	}
	if len(left) > 0 {
		return nil, fmt.Errorf(FmtErrorWithString, ErrUnconsumedTokens, describeLeaves(left))
	}

	opts := Opts{}
	for _, leaf := range Flatten(prog.fixed) {
		if _, found := opts[leaf.Key()]; !found {
			opts[leaf.Key()] = leaf.LeafValue()
		}
	}
	for _, leaf := range collected {
		opts[leaf.Key()] = leaf.LeafValue()
	}

	return opts, nil
}

// extras reports help and version requests found among the parsed leaves
func (prog *Program) extras(leaves []Leaf) error {
	for _, leaf := range leaves {
		o, ok := leaf.(OptionRef)
		if !ok || !o.Value.AsBool() {
			continue
		}
		if prog.parser.help && (o.Short == "-h" || o.Long == "--help") {
			return ErrHelpRequested
		}
		if prog.parser.version != "" && o.Long == "--version" {
			return ErrVersionRequested
		}
	}

	return nil
}

func describeLeaves(leaves []Leaf) string {
	words := make([]string, len(leaves))
	for i, leaf := range leaves {
		if a, ok := leaf.(Argument); ok && a.Name == "" {
			words[i] = a.Value.AsText()
			continue
		}
		words[i] = leaf.Key()
	}

	return strings.Join(words, " ")
}

// ParseDoc parses doc with a default Parser.
func ParseDoc(doc string) (*Program, error) {
	return NewParser().ParseDoc(doc)
}
