package docopt

import (
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Option describes an option declared in the Options section, inline in the usage
// pattern, or met for the first time in an argument vector.
type Option struct {
	Short   string // "-f", or empty
	Long    string // "--file", or empty
	Arity   int    // 0 for flags, 1 for options taking a value
	Default Value
}

// Name returns the key an option is bound under: the long form when present,
// otherwise the short form.
func (o Option) Name() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

func (o Option) String() string {
	return OptionRef{Short: o.Short, Long: o.Long, Arity: o.Arity, Value: o.Default}.String()
}

func (o Option) ref() OptionRef {
	return OptionRef{Short: o.Short, Long: o.Long, Arity: o.Arity, Value: o.Default}
}

func defaultForArity(arity int) Value {
	if arity == 0 {
		return BoolValue(false)
	}
	return NoValue()
}

// OptionTable is the ordered set of options known while parsing one docstring and
// one argument vector. Long forms are unique, and so are short forms.
type OptionTable struct {
	entries *orderedmap.OrderedMap[string, Option]
	shorts  map[string]string
}

// NewOptionTable creates an empty OptionTable
func NewOptionTable() *OptionTable {
	return &OptionTable{
		entries: orderedmap.New[string, Option](),
		shorts:  map[string]string{},
	}
}

// Add registers o. It fails when o's short or long form is already known.
func (t *OptionTable) Add(o Option) error {
	if o.Short == "" && o.Long == "" {
		return fmt.Errorf("%w: option has neither a short nor a long form", ErrMalformedOption)
	}
	if o.Long != "" {
		if _, found := t.entries.Get(o.Long); found {
			return fmt.Errorf(FmtErrorWithString, ErrOptionNotUnique, o.Long)
		}
	}
	if o.Short != "" {
		if _, found := t.shorts[o.Short]; found {
			return fmt.Errorf(FmtErrorWithString, ErrOptionNotUnique, o.Short)
		}
		t.shorts[o.Short] = o.Name()
	}
	t.entries.Set(o.Name(), o)

	return nil
}

// Long returns the option whose long form is exactly name
func (t *OptionTable) Long(name string) (Option, bool) {
	if !strings.HasPrefix(name, "--") {
		return Option{}, false
	}
	return t.entries.Get(name)
}

// Short returns the option whose short form is name
func (t *OptionTable) Short(name string) (Option, bool) {
	key, found := t.shorts[name]
	if !found {
		return Option{}, false
	}
	return t.entries.Get(key)
}

// LongPrefix returns, in table order, every option whose long form starts with prefix
func (t *OptionTable) LongPrefix(prefix string) []Option {
	var similar []Option
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Long != "" && strings.HasPrefix(pair.Value.Long, prefix) {
			similar = append(similar, pair.Value)
		}
	}

	return similar
}

// Options returns the table's options in discovery order
func (t *OptionTable) Options() []Option {
	out := make([]Option, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}

func (t *OptionTable) Len() int {
	return t.entries.Len()
}

// Clone returns an independent copy, so that a table built for a docstring can be
// extended while parsing one argument vector without affecting the next.
func (t *OptionTable) Clone() *OptionTable {
	c := NewOptionTable()
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		c.entries.Set(pair.Key, pair.Value)
	}
	for short, key := range t.shorts {
		c.shorts[short] = key
	}

	return c
}

var (
	defaultValuePattern = regexp.MustCompile(`(?i)\[default: (.*?)\]`)
	optionsHeader       = regexp.MustCompile(`(?i)^options:`)
)

// ParseOptionSection scans doc for option description lines: lines whose first
// non-blank character is '-', optionally preceded by an "Options:" header.
// Indented lines following an option line, up to a blank line or the next option,
// continue its description and may carry its default.
func ParseOptionSection(doc string) []Option {
	var options []Option
	lines := strings.Split(doc, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if loc := optionsHeader.FindStringIndex(line); loc != nil {
			line = strings.TrimSpace(line[loc[1]:])
		}
		if !strings.HasPrefix(line, "-") {
			continue
		}
		var more []string
		for i+1 < len(lines) && continuesDescription(lines[i+1]) {
			i++
			more = append(more, strings.TrimSpace(lines[i]))
		}
		if o, ok := parseOptionLine(line, strings.Join(more, " ")); ok {
			options = append(options, o)
		}
	}

	return options
}

func continuesDescription(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
		return false
	}

	return !strings.HasPrefix(trimmed, "-") && !optionsHeader.MatchString(trimmed)
}

// parseOptionLine reads "-f FILE, --file=FILE  Description [default: x]", with
// more holding the rest of the description from continuation lines.
func parseOptionLine(line, more string) (Option, bool) {
	forms, description, found := strings.Cut(line, "  ")
	if !found {
		forms, description = line, ""
	}
	if more != "" {
		description += " " + more
	}
	forms = strings.NewReplacer(",", " ", "=", " ").Replace(forms)

	var o Option
	for _, word := range strings.Fields(forms) {
		switch {
		case word == "-" || word == "--":
		case strings.HasPrefix(word, "--"):
			o.Long = word
		case strings.HasPrefix(word, "-"):
			o.Short = word
		default:
			o.Arity = 1
		}
	}
	if o.Short == "" && o.Long == "" {
		return o, false
	}

	o.Default = defaultForArity(o.Arity)
	if m := defaultValuePattern.FindStringSubmatch(description); m != nil {
		o.Default = TextValue(m[1])
	}

	return o, true
}

// buildOptionTable registers every option described in doc
func buildOptionTable(doc string) (*OptionTable, error) {
	table := NewOptionTable()
	for _, o := range ParseOptionSection(doc) {
		if err := table.Add(o); err != nil {
			return nil, err
		}
	}

	return table, nil
}
