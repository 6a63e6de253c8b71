package docopt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	Absent  Kind = iota // Absent denotes a leaf with no value (an argument never supplied)
	Boolean             // Boolean denotes a flag or command
	Text                // Text denotes a single raw string
	List                // List denotes the values collected by a repeated argument or option
	Count               // Count denotes the number of times a repeated flag or command occurred
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Text:
		return "text"
	case List:
		return "list"
	case Count:
		return "count"
	case Absent:
		fallthrough
	default:
		return "absent"
	}
}

// Value is the tagged value bound to an option, argument or command name. The
// zero Value is Absent. Values are immutable: accessors return copies.
type Value struct {
	kind  Kind
	flag  bool
	text  string
	items []string
	count int
}

// NoValue returns the Absent value
func NoValue() Value {
	return Value{}
}

// BoolValue returns a Boolean value
func BoolValue(b bool) Value {
	return Value{kind: Boolean, flag: b}
}

// TextValue returns a Text value
func TextValue(s string) Value {
	return Value{kind: Text, text: s}
}

// ListValue returns a List value holding a copy of items
func ListValue(items ...string) Value {
	return Value{kind: List, items: append([]string{}, items...)}
}

// CountValue returns a Count value
func CountValue(n int) Value {
	return Value{kind: Count, count: n}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == Absent
}

// AsBool returns the boolean held by v. Count values are true when non-zero.
func (v Value) AsBool() bool {
	switch v.kind {
	case Boolean:
		return v.flag
	case Count:
		return v.count > 0
	}
	return false
}

// AsText returns the string held by a Text value, or "" for any other kind
func (v Value) AsText() string {
	if v.kind == Text {
		return v.text
	}
	return ""
}

// AsList returns a copy of the items held by a List value. A Text value is
// returned as a single item list.
func (v Value) AsList() []string {
	switch v.kind {
	case List:
		return append([]string{}, v.items...)
	case Text:
		return []string{v.text}
	}
	return nil
}

// AsCount returns the number held by a Count value
func (v Value) AsCount() int {
	if v.kind == Count {
		return v.count
	}
	return 0
}

// Equal reports whether v and other hold the same variant and contents
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Boolean:
		return v.flag == other.flag
	case Text:
		return v.text == other.text
	case Count:
		return v.count == other.count
	case List:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if v.items[i] != other.items[i] {
				return false
			}
		}
	}
	return true
}

// Interface returns v as nil, bool, string, []string or int
func (v Value) Interface() any {
	switch v.kind {
	case Boolean:
		return v.flag
	case Text:
		return v.text
	case List:
		return v.AsList()
	case Count:
		return v.count
	}
	return nil
}

// String renders v the way it is printed in pattern dumps: None, True, 'x', ['a', 'b'], 3
func (v Value) String() string {
	switch v.kind {
	case Boolean:
		if v.flag {
			return "True"
		}
		return "False"
	case Text:
		return "'" + v.text + "'"
	case List:
		quoted := make([]string, len(v.items))
		for i, item := range v.items {
			quoted[i] = "'" + item + "'"
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case Count:
		return strconv.Itoa(v.count)
	}
	return "None"
}

// MarshalJSON encodes v as null, a boolean, a string, an array of strings or a number
func (v Value) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	var payload any = v.Interface()
	if v.kind == List && len(v.items) == 0 {
		payload = []string{}
	}
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// add accumulates inc into v for repeated leaves: counts are summed and lists
// are concatenated.
func (v Value) add(inc Value) Value {
	switch v.kind {
	case Count:
		return CountValue(v.count + inc.count)
	case List:
		items := append(append([]string{}, v.items...), inc.items...)
		return Value{kind: List, items: items}
	}
	return inc
}
