package docopt

import (
	"strings"
)

// Pattern is a node of the tree a usage section is parsed into. The set of
// implementations is closed: Argument, Command and OptionRef are leaves;
// Sequence, Optional, Alternative, Repeated and AnyOptions are branches.
type Pattern interface {
	String() string
	pattern()
}

// Leaf is a pattern standing for a single slot of the argument vector.
type Leaf interface {
	Pattern
	// Key is the name the leaf is bound under
	Key() string
	// LeafValue is the default value in a pattern tree, and the bound value in
	// an argument vector or a match result
	LeafValue() Value
	withValue(v Value) Leaf
}

// Argument is a positional value: <name> or NAME in a usage pattern, or a loose
// (unnamed) positional token of an argument vector.
type Argument struct {
	Name  string
	Value Value
}

// Command is a literal word which must appear verbatim.
type Command struct {
	Name  string
	Value Value
}

// OptionRef refers to an option of the option table.
type OptionRef struct {
	Short string
	Long  string
	Arity int
	Value Value
}

// Sequence requires all of its children, in order.
type Sequence struct {
	Children []Pattern
}

// Optional matches each of its children if it can; it never fails.
type Optional struct {
	Children []Pattern
}

// Alternative requires exactly one of its children.
type Alternative struct {
	Children []Pattern
}

// Repeated requires its children, as a sequence, one or more times.
type Repeated struct {
	Children []Pattern
}

// AnyOptions is the "[options]" placeholder. It is replaced by the options not
// mentioned elsewhere in the tree before matching.
type AnyOptions struct{}

func (Argument) pattern()    {}
func (Command) pattern()     {}
func (OptionRef) pattern()   {}
func (Sequence) pattern()    {}
func (Optional) pattern()    {}
func (Alternative) pattern() {}
func (Repeated) pattern()    {}
func (AnyOptions) pattern()  {}

func (a Argument) Key() string       { return a.Name }
func (a Argument) LeafValue() Value  { return a.Value }
func (c Command) Key() string        { return c.Name }
func (c Command) LeafValue() Value   { return c.Value }
func (o OptionRef) LeafValue() Value { return o.Value }

// Key returns the long form of the option when present, otherwise the short form
func (o OptionRef) Key() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

func (a Argument) withValue(v Value) Leaf {
	a.Value = v
	return a
}

func (c Command) withValue(v Value) Leaf {
	c.Value = v
	return c
}

func (o OptionRef) withValue(v Value) Leaf {
	o.Value = v
	return o
}

func (a Argument) String() string {
	return "Argument(" + quoteOrNone(a.Name) + ", " + a.Value.String() + ")"
}

func (c Command) String() string {
	return "Command(" + quoteOrNone(c.Name) + ", " + c.Value.String() + ")"
}

func (o OptionRef) String() string {
	arity := "0"
	if o.Arity == 1 {
		arity = "1"
	}
	return "Option(" + quoteOrNone(o.Short) + ", " + quoteOrNone(o.Long) + ", " + arity + ", " + o.Value.String() + ")"
}

func (s Sequence) String() string    { return branchString("Sequence", s.Children) }
func (o Optional) String() string    { return branchString("Optional", o.Children) }
func (a Alternative) String() string { return branchString("Alternative", a.Children) }
func (r Repeated) String() string    { return branchString("Repeated", r.Children) }
func (AnyOptions) String() string    { return "AnyOptions()" }

func quoteOrNone(s string) string {
	if s == "" {
		return "None"
	}
	return "'" + s + "'"
}

func branchString(name string, children []Pattern) string {
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = child.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// children returns the children of a branch pattern, or nil for leaves
func children(p Pattern) []Pattern {
	switch n := p.(type) {
	case Sequence:
		return n.Children
	case Optional:
		return n.Children
	case Alternative:
		return n.Children
	case Repeated:
		return n.Children
	}
	return nil
}

// withChildren returns a copy of branch p holding kids instead of its children
func withChildren(p Pattern, kids []Pattern) Pattern {
	switch p.(type) {
	case Sequence:
		return Sequence{Children: kids}
	case Optional:
		return Optional{Children: kids}
	case Alternative:
		return Alternative{Children: kids}
	case Repeated:
		return Repeated{Children: kids}
	}
	return p
}

// rewrite rebuilds p bottom-up, replacing every node n by fn(n). fn sees the
// already rewritten children of a branch.
func rewrite(p Pattern, fn func(Pattern) Pattern) Pattern {
	if kids := children(p); kids != nil {
		rewritten := make([]Pattern, len(kids))
		for i, kid := range kids {
			rewritten[i] = rewrite(kid, fn)
		}
		p = withChildren(p, rewritten)
	}
	return fn(p)
}

// Flatten returns the leaves of p in pre-order.
func Flatten(p Pattern) []Leaf {
	var leaves []Leaf
	var walk func(Pattern)
	walk = func(p Pattern) {
		if leaf, ok := p.(Leaf); ok {
			leaves = append(leaves, leaf)
			return
		}
		for _, kid := range children(p) {
			walk(kid)
		}
	}
	walk(p)

	return leaves
}

// leafIdentity distinguishes leaves of different kinds sharing a name
func leafIdentity(l Leaf) string {
	switch n := l.(type) {
	case Argument:
		return "argument:" + n.Name
	case Command:
		return "command:" + n.Name
	case OptionRef:
		return "option:" + n.Short + "|" + n.Long
	}
	return ""
}
