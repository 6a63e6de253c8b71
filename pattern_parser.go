package docopt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/napalu/docopt/parse"
)

var (
	usageMarker = regexp.MustCompile(`(?i)usage:`)
	blankLine   = regexp.MustCompile(`\n\s*\n`)
)

// usageSection returns the text from "Usage:" up to the first blank line.
func usageSection(doc string) (string, error) {
	markers := usageMarker.FindAllStringIndex(doc, -1)
	switch {
	case len(markers) == 0:
		return "", ErrUsageNotFound
	case len(markers) > 1:
		return "", ErrMultipleUsage
	}
	section := blankLine.Split(doc[markers[0][0]:], 2)[0]

	return strings.TrimSpace(section), nil
}

// formalUsage turns "Usage: prog a\n prog b" into "( a ) | ( b )": every
// repetition of the program name starts a new alternative.
func formalUsage(section string) (string, error) {
	_, after, _ := strings.Cut(section, ":")
	words := strings.Fields(after)
	if len(words) == 0 {
		return "", ErrEmptyUsage
	}

	var b strings.Builder
	b.WriteString("(")
	for _, word := range words[1:] {
		if word == words[0] {
			b.WriteString(" ) | (")
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
	}
	b.WriteString(" )")

	return b.String(), nil
}

// patternParser is a recursive descent parser over usage tokens. It registers the
// options it meets inline into table.
type patternParser struct {
	tokens *parse.Tokens
	table  *OptionTable
}

// parsePattern parses a formal usage string into a Sequence rooted tree.
//
//	expr ::= seq ( '|' seq )*
//	seq  ::= ( atom [ '...' ] )*
//	atom ::= '(' expr ')' | '[' expr ']' | 'options' | long | shorts | argument | command
func parsePattern(source string, table *OptionTable) (Pattern, error) {
	p := &patternParser{tokens: parse.FromPattern(source), table: table}
	result, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.tokens.Empty() {
		return nil, fmt.Errorf(FmtErrorWithString, ErrUnexpectedEnding, strings.Join(p.tokens.Drain(), " "))
	}

	return Sequence{Children: result}, nil
}

func (p *patternParser) expr() ([]Pattern, error) {
	seq, err := p.seq()
	if err != nil {
		return nil, err
	}
	if p.tokens.Current() != "|" {
		return seq, nil
	}

	branches := appendBranch(nil, seq)
	for p.tokens.Current() == "|" {
		p.tokens.Move()
		if seq, err = p.seq(); err != nil {
			return nil, err
		}
		branches = appendBranch(branches, seq)
	}
	if len(branches) > 1 {
		return []Pattern{Alternative{Children: branches}}, nil
	}

	return branches, nil
}

// appendBranch adds one alternative: a lone atom stands for itself, several are
// grouped into a Sequence.
func appendBranch(branches []Pattern, seq []Pattern) []Pattern {
	if len(seq) > 1 {
		return append(branches, Sequence{Children: seq})
	}
	return append(branches, seq...)
}

func (p *patternParser) seq() ([]Pattern, error) {
	var result []Pattern
	for !p.tokens.Empty() && !endsSeq(p.tokens.Current()) {
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		if p.tokens.Current() == "..." {
			atom = []Pattern{Repeated{Children: atom}}
			p.tokens.Move()
		}
		result = append(result, atom...)
	}

	return result, nil
}

func endsSeq(token string) bool {
	return token == "]" || token == ")" || token == "|"
}

func (p *patternParser) atom() ([]Pattern, error) {
	token := p.tokens.Current()
	switch {
	case token == "(" || token == "[":
		p.tokens.Move()
		closing := ")"
		if token == "[" {
			closing = "]"
		}
		result, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tokens.Move() != closing {
			return nil, fmt.Errorf("%w: unmatched '%s'", ErrMissingEnclosure, token)
		}
		if token == "(" {
			return []Pattern{Sequence{Children: result}}, nil
		}
		return []Pattern{Optional{Children: result}}, nil
	case token == "options":
		p.tokens.Move()
		return []Pattern{AnyOptions{}}, nil
	case strings.HasPrefix(token, "--") && token != "--":
		return p.long()
	case strings.HasPrefix(token, "-") && token != "-" && token != "--":
		return p.shorts()
	case isArgumentName(token):
		return []Pattern{Argument{Name: p.tokens.Move(), Value: NoValue()}}, nil
	default:
		return []Pattern{Command{Name: p.tokens.Move(), Value: BoolValue(false)}}, nil
	}
}

// isArgumentName reports whether token is <bracketed> or entirely upper case
func isArgumentName(token string) bool {
	if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
		return true
	}
	cased := false
	for _, r := range token {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}

	return cased
}

// long reads "--name" or "--name=VALUE". An option not yet in the table is
// registered, its arity given by the presence of "=".
func (p *patternParser) long() ([]Pattern, error) {
	raw := p.tokens.Move()
	name, _, hasValue := strings.Cut(raw, "=")
	if name == "--" {
		return nil, fmt.Errorf(FmtErrorWithString, ErrMalformedOption, raw)
	}

	o, found := p.table.Long(name)
	if !found {
		arity := 0
		if hasValue {
			arity = 1
		}
		o = Option{Long: name, Arity: arity, Default: defaultForArity(arity)}
		if err := p.table.Add(o); err != nil {
			return nil, err
		}
		return []Pattern{o.ref()}, nil
	}

	switch {
	case o.Arity == 0 && hasValue:
		return nil, fmt.Errorf("%w: %s is a flag but is given a value in '%s'", ErrArityConflict, o.Long, raw)
	case o.Arity == 1 && !hasValue:
		// "--file FILE": the placeholder is consumed
		if p.tokens.Empty() || p.tokens.Current() == "--" {
			return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, o.Long)
		}
		p.tokens.Move()
	}

	return []Pattern{o.ref()}, nil
}

// shorts reads a stack of short options such as "-abc" or "-fFILE". Unknown
// characters are registered as flags.
func (p *patternParser) shorts() ([]Pattern, error) {
	raw := p.tokens.Move()
	left := raw[1:]

	var parsed []Pattern
	for left != "" {
		_, size := utf8.DecodeRuneInString(left)
		short := "-" + left[:size]
		left = left[size:]

		o, found := p.table.Short(short)
		switch {
		case !found:
			o = Option{Short: short, Default: BoolValue(false)}
			if err := p.table.Add(o); err != nil {
				return nil, err
			}
		case o.Arity == 1 && left == "":
			if p.tokens.Empty() || p.tokens.Current() == "--" {
				return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, short)
			}
			p.tokens.Move()
		case o.Arity == 1:
			left = ""
		}
		parsed = append(parsed, o.ref())
	}

	return parsed, nil
}
