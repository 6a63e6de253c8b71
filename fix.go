package docopt

import "strings"

// fixPattern finalizes a parsed tree for matching: the options placeholder is
// resolved against table, and leaves which can occur several times in one match
// get accumulating (List or Count) defaults. The input tree is left untouched.
func fixPattern(p Pattern, table *OptionTable) Pattern {
	return markRepeating(resolveAnyOptions(p, table))
}

// resolveAnyOptions replaces every AnyOptions node by an Optional holding one
// OptionRef per table entry not referenced explicitly in p. Running it on its own
// output is a no-op.
func resolveAnyOptions(p Pattern, table *OptionTable) Pattern {
	explicit := map[string]bool{}
	for _, leaf := range Flatten(p) {
		if ref, ok := leaf.(OptionRef); ok {
			explicit[leafIdentity(ref)] = true
		}
	}

	var remaining []Pattern
	for _, o := range table.Options() {
		ref := o.ref()
		if !explicit[leafIdentity(ref)] {
			remaining = append(remaining, ref)
		}
	}

	return rewrite(p, func(n Pattern) Pattern {
		if _, ok := n.(AnyOptions); ok {
			return Optional{Children: append([]Pattern{}, remaining...)}
		}
		return n
	})
}

// markRepeating gives an accumulating default to every leaf occurring more than
// once in some expansion of p: value taking leaves collect a List, flags and
// commands a Count.
func markRepeating(p Pattern) Pattern {
	repeating := map[string]bool{}
	for id, n := range occurrences(p) {
		if n > 1 {
			repeating[id] = true
		}
	}
	if len(repeating) == 0 {
		return p
	}

	return rewrite(p, func(n Pattern) Pattern {
		leaf, ok := n.(Leaf)
		if !ok || !repeating[leafIdentity(leaf)] {
			return n
		}
		return leaf.withValue(accumulatingDefault(leaf))
	})
}

func accumulatingDefault(leaf Leaf) Value {
	takesValue := true
	switch n := leaf.(type) {
	case Command:
		takesValue = false
	case OptionRef:
		takesValue = n.Arity == 1
	}
	if !takesValue {
		return CountValue(0)
	}

	def := leaf.LeafValue()
	switch def.Kind() {
	case List:
		return def
	case Text:
		return ListValue(strings.Fields(def.AsText())...)
	}
	return ListValue()
}

// occurrences maps each leaf identity in p to the most times it can occur in a
// single expansion of p, picking one branch per Alternative. Children of
// Repeated count twice so that a leaf under "..." always repeats.
func occurrences(p Pattern) map[string]int {
	switch n := p.(type) {
	case Leaf:
		return map[string]int{leafIdentity(n): 1}
	case Alternative:
		most := map[string]int{}
		for _, kid := range n.Children {
			for id, c := range occurrences(kid) {
				most[id] = max(most[id], c)
			}
		}
		return most
	case Repeated:
		sum := sumOccurrences(n.Children)
		for id := range sum {
			sum[id] *= 2
		}
		return sum
	}

	return sumOccurrences(children(p))
}

func sumOccurrences(kids []Pattern) map[string]int {
	sum := map[string]int{}
	for _, kid := range kids {
		for id, c := range occurrences(kid) {
			sum[id] += c
		}
	}

	return sum
}
