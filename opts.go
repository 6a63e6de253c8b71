package docopt

import (
	"fmt"
	"sort"

	"github.com/napalu/docopt/internal/util"
)

// Opts is the binding map produced by a successful match: every option,
// argument and command name of the docstring mapped to its Value.
type Opts map[string]Value

// Keys returns the bound names in sorted order
func (o Opts) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Has reports whether name was given a value: a true flag or command, a text
// value, a non-empty list or a non-zero count.
func (o Opts) Has(name string) bool {
	v, found := o[name]
	if !found {
		return false
	}
	switch v.Kind() {
	case Boolean, Count:
		return v.AsBool()
	case Text:
		return true
	case List:
		return len(v.items) > 0
	}

	return false
}

func (o Opts) lookup(name string) (Value, error) {
	v, found := o[name]
	if !found {
		return v, fmt.Errorf(FmtErrorWithString, ErrKeyNotFound, name)
	}

	return v, nil
}

func wrongType(name string, v Value, want string) error {
	return fmt.Errorf("%w: %s holds a %s value, not %s", ErrValueType, name, v.Kind(), want)
}

// Bool returns the state of a flag or command. A counted flag is true when it
// occurred at least once.
func (o Opts) Bool(name string) (bool, error) {
	v, err := o.lookup(name)
	if err != nil {
		return false, err
	}
	switch v.Kind() {
	case Boolean, Count:
		return v.AsBool(), nil
	}

	return false, wrongType(name, v, "a boolean")
}

// String returns the text bound to name, or "" when no value was given.
func (o Opts) String(name string) (string, error) {
	v, err := o.lookup(name)
	if err != nil {
		return "", err
	}
	switch v.Kind() {
	case Text:
		return v.AsText(), nil
	case Absent:
		return "", nil
	}

	return "", wrongType(name, v, "text")
}

// List returns the values collected for name. A single text value is returned as
// a one element list and an absent value as nil.
func (o Opts) List(name string) ([]string, error) {
	v, err := o.lookup(name)
	if err != nil {
		return nil, err
	}
	switch v.Kind() {
	case List, Text, Absent:
		return v.AsList(), nil
	}

	return nil, wrongType(name, v, "a list")
}

// Int returns the occurrence count of a repeated flag or command, or the text
// bound to name parsed as an integer.
func (o Opts) Int(name string) (int, error) {
	v, err := o.lookup(name)
	if err != nil {
		return 0, err
	}
	switch v.Kind() {
	case Count:
		return v.AsCount(), nil
	case Text:
		var i int
		err = util.ConvertString(v.AsText(), &i, name)
		return i, err
	}

	return 0, wrongType(name, v, "a number")
}

// Float64 returns the text bound to name parsed as a float64
func (o Opts) Float64(name string) (float64, error) {
	v, err := o.lookup(name)
	if err != nil {
		return 0, err
	}
	if v.Kind() != Text {
		return 0, wrongType(name, v, "a number")
	}
	var f float64
	err = util.ConvertString(v.AsText(), &f, name)

	return f, err
}
