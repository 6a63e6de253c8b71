// Package fixture loads docopt test fixtures and runs them against the parser.
//
// Two formats are understood. The classic format is a sequence of docstrings
// written as raw string literals, each followed by cases:
//
//	r"""Usage: prog [-a]
//
//	"""
//	$ prog -a
//	{"-a": true}
//
//	$ prog -x
//	"user-error"
//
// Text from '#' to the end of a line is a comment. The YAML format holds the same
// information as a list of documents with named cases.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/napalu/docopt"
	"github.com/napalu/docopt/parse"
)

// Expected outcomes standing in for a binding map
const (
	UserError     = "user-error"
	LanguageError = "language-error"
)

var (
	ErrMalformedFixture = errors.New("malformed fixture")
	ErrUnknownFormat    = errors.New("unknown fixture format")
)

// Case is one argument vector to match against one docstring.
type Case struct {
	Name         string
	Doc          string
	Prog         string
	Argv         []string
	OptionsFirst bool
	// Want is the expected binding map decoded from JSON, or one of UserError
	// and LanguageError.
	Want any
}

var comment = regexp.MustCompile(`(?m)#.*$`)

// ParseClassic reads fixtures in the classic format. source names the input in
// case names.
func ParseClassic(source, raw string) ([]Case, error) {
	raw = strings.TrimSpace(comment.ReplaceAllString(raw, ""))
	raw = strings.TrimPrefix(raw, `"""`)

	var cases []Case
	for i, fixture := range strings.Split(raw, `r"""`) {
		if strings.TrimSpace(fixture) == "" {
			continue
		}
		doc, body, found := strings.Cut(fixture, `"""`)
		if !found {
			return nil, fmt.Errorf("%w: %s: docstring %d is not terminated", ErrMalformedFixture, source, i)
		}
		for j, block := range strings.Split(body, "$")[1:] {
			line, expect, _ := strings.Cut(strings.TrimSpace(block), "\n")
			prog, args, _ := strings.Cut(strings.TrimSpace(line), " ")
			argv, err := parse.Split(args)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: docstring %d case %d: %w", ErrMalformedFixture, source, i, j+1, err)
			}
			var want any
			if err = json.Unmarshal([]byte(strings.TrimSpace(expect)), &want); err != nil {
				return nil, fmt.Errorf("%w: %s: docstring %d case %d: %w", ErrMalformedFixture, source, i, j+1, err)
			}
			cases = append(cases, Case{
				Name: fmt.Sprintf("%s/%d/%d", source, i, j+1),
				Doc:  doc,
				Prog: prog,
				Argv: argv,
				Want: want,
			})
		}
	}

	return cases, nil
}

type yamlDocument struct {
	Name         string     `yaml:"name"`
	Doc          string     `yaml:"doc"`
	OptionsFirst bool       `yaml:"options_first"`
	Cases        []yamlCase `yaml:"cases"`
}

type yamlCase struct {
	Name  string         `yaml:"name"`
	Argv  []string       `yaml:"argv"`
	Want  map[string]any `yaml:"want"`
	Error string         `yaml:"error"`
}

// ParseYAML reads fixtures in the YAML format.
func ParseYAML(source string, data []byte) ([]Case, error) {
	var docs []yamlDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedFixture, source, err)
	}

	var cases []Case
	for i, d := range docs {
		docName := d.Name
		if docName == "" {
			docName = fmt.Sprint(i)
		}
		for j, c := range d.Cases {
			name := c.Name
			if name == "" {
				name = fmt.Sprint(j + 1)
			}
			var want any
			switch c.Error {
			case "":
				w, err := normalize(c.Want)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: %s/%s: %w", ErrMalformedFixture, source, docName, name, err)
				}
				want = w
			case UserError, LanguageError:
				want = c.Error
			default:
				return nil, fmt.Errorf("%w: %s: %s/%s: unknown error kind %q", ErrMalformedFixture, source, docName, name, c.Error)
			}
			cases = append(cases, Case{
				Name:         source + "/" + docName + "/" + name,
				Doc:          d.Doc,
				Prog:         "prog",
				Argv:         c.Argv,
				OptionsFirst: d.OptionsFirst,
				Want:         want,
			})
		}
	}

	return cases, nil
}

// normalize gives v the shape encoding/json decodes into: numbers as float64 and
// a nil map as an empty object.
func normalize(v any) (any, error) {
	if m, ok := v.(map[string]any); ok && m == nil {
		v = map[string]any{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(data, &out)

	return out, err
}

// Load reads a fixture file, choosing the format by extension: .yaml and .yml
// files are YAML, .docopt files are classic.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return ParseYAML(source, data)
	case ".docopt":
		return ParseClassic(source, string(data))
	}

	return nil, fmt.Errorf(docopt.FmtErrorWithString, ErrUnknownFormat, path)
}

// Result is the outcome of running one Case.
type Result struct {
	Case   Case
	Got    any
	Err    error
	Diff   string
	Passed bool
}

// Run matches c against its docstring with a Parser built from configs and
// compares the outcome with c.Want.
func Run(c Case, configs ...docopt.ConfigureParserFunc) Result {
	r := Result{Case: c}
	all := append([]docopt.ConfigureParserFunc{docopt.WithOptionsFirst(c.OptionsFirst)}, configs...)
	p, err := docopt.NewParserWith(all...)
	if err != nil {
		r.Err = err
		return r
	}

	opts, err := p.Parse(c.Doc, c.Argv)
	r.Err = err
	switch {
	case docopt.IsLanguageError(err):
		r.Got = LanguageError
	case docopt.IsUserError(err):
		r.Got = UserError
	case err != nil:
		return r
	default:
		if r.Got, err = normalize(opts); err != nil {
			r.Err = err
			return r
		}
	}

	r.Diff = cmp.Diff(c.Want, r.Got)
	r.Passed = r.Diff == ""

	return r
}
