package docopt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/napalu/docopt/parse"
)

// resolveLong finds the option a possibly abbreviated long name refers to. An
// exact match wins; otherwise the name must be the prefix of exactly one long
// option. found is false when nothing matches.
func resolveLong(table *OptionTable, name string) (o Option, found bool, err error) {
	if o, found = table.Long(name); found {
		return o, true, nil
	}
	similar := table.LongPrefix(name)
	switch len(similar) {
	case 0:
		return Option{}, false, nil
	case 1:
		return similar[0], true, nil
	}
	names := make([]string, len(similar))
	for i, s := range similar {
		names[i] = s.Long
	}

	return Option{}, false, fmt.Errorf("%w: %s could be %s", ErrAmbiguousOption, name, strings.Join(names, ", "))
}

// disambiguate rewrites argv so that every known long option is spelled out in
// full and carries its value inline: "--fi x" becomes "--file=x". Everything
// after "--" (and, in options-first mode, after the first positional) is passed
// through untouched.
func disambiguate(argv []string, table *OptionTable, optionsFirst bool) ([]string, error) {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch {
		case token == "--":
			return append(out, argv[i:]...), nil
		case strings.HasPrefix(token, "--"):
			name, value, hasValue := strings.Cut(token, "=")
			if name == "--" {
				return nil, fmt.Errorf(FmtErrorWithString, ErrMalformedOption, token)
			}
			o, found, err := resolveLong(table, name)
			if err != nil {
				return nil, err
			}
			if !found {
				out = append(out, token)
				continue
			}
			switch {
			case o.Arity == 0 && hasValue:
				return nil, fmt.Errorf(FmtErrorWithString, ErrUnexpectedArgument, o.Long)
			case o.Arity == 1 && !hasValue:
				if i+1 >= len(argv) || argv[i+1] == "--" {
					return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, o.Long)
				}
				i++
				value, hasValue = argv[i], true
			}
			if hasValue {
				out = append(out, o.Long+"="+value)
			} else {
				out = append(out, o.Long)
			}
		case strings.HasPrefix(token, "-") && token != "-":
			out = append(out, token)
			if stackTakesNext(table, token) && i+1 < len(argv) && argv[i+1] != "--" {
				i++
				out = append(out, argv[i])
			}
		case optionsFirst:
			return append(out, argv[i:]...), nil
		default:
			out = append(out, token)
		}
	}

	return out, nil
}

// stackTakesNext reports whether the last short option of the stack token needs a
// value and none is attached, so that the following token is its value.
func stackTakesNext(table *OptionTable, token string) bool {
	left := token[1:]
	for left != "" {
		_, size := utf8.DecodeRuneInString(left)
		o, found := table.Short("-" + left[:size])
		left = left[size:]
		if found && o.Arity == 1 {
			return left == ""
		}
	}

	return false
}

// argvParser classifies a normalized argument vector into leaves. Options not in
// the table are registered as they are met.
type argvParser struct {
	tokens       *parse.Tokens
	table        *OptionTable
	optionsFirst bool
}

// parseArgv returns one leaf per option occurrence and per positional token, in
// argument vector order.
func parseArgv(argv []string, table *OptionTable, optionsFirst bool) ([]Leaf, error) {
	p := &argvParser{tokens: parse.FromArgs(argv), table: table, optionsFirst: optionsFirst}

	var parsed []Leaf
	for !p.tokens.Empty() {
		token := p.tokens.Current()
		switch {
		case token == "--":
			// everything from here on is positional; "--" itself is kept so that
			// a "[--]" in the usage pattern can match it
			return append(parsed, p.loose()...), nil
		case strings.HasPrefix(token, "--"):
			leaf, err := p.long()
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, leaf)
		case strings.HasPrefix(token, "-") && token != "-":
			leaves, err := p.shorts()
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, leaves...)
		case p.optionsFirst:
			return append(parsed, p.loose()...), nil
		default:
			parsed = append(parsed, Argument{Value: TextValue(p.tokens.Move())})
		}
	}

	return parsed, nil
}

func (p *argvParser) loose() []Leaf {
	rest := p.tokens.Drain()
	leaves := make([]Leaf, len(rest))
	for i, v := range rest {
		leaves[i] = Argument{Value: TextValue(v)}
	}

	return leaves
}

func (p *argvParser) long() (Leaf, error) {
	raw := p.tokens.Move()
	name, value, hasValue := strings.Cut(raw, "=")
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
	}

	switch {
	case o.Arity == 0 && hasValue:
		return nil, fmt.Errorf(FmtErrorWithString, ErrUnexpectedArgument, o.Long)
	case o.Arity == 1 && !hasValue:
		if p.tokens.Empty() || p.tokens.Current() == "--" {
			return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, o.Long)
		}
		value = p.tokens.Move()
	}

	ref := o.ref()
	if o.Arity == 0 {
		ref.Value = BoolValue(true)
	} else {
		ref.Value = TextValue(value)
	}

	return ref, nil
}

func (p *argvParser) shorts() ([]Leaf, error) {
	raw := p.tokens.Move()
	left := raw[1:]

	var parsed []Leaf
	for left != "" {
		_, size := utf8.DecodeRuneInString(left)
		short := "-" + left[:size]
		left = left[size:]

		o, found := p.table.Short(short)
		if !found {
			o = Option{Short: short, Default: BoolValue(false)}
			if err := p.table.Add(o); err != nil {
				return nil, err
			}
		}

		ref := o.ref()
		if o.Arity == 0 {
			ref.Value = BoolValue(true)
			parsed = append(parsed, ref)
			continue
		}
		value := left
		if left == "" {
			if p.tokens.Empty() || p.tokens.Current() == "--" {
				return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, short)
			}
			value = p.tokens.Move()
		}
		left = ""
		ref.Value = TextValue(value)
		parsed = append(parsed, ref)
	}

	return parsed, nil
}
