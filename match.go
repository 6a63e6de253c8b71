package docopt

// matchPattern matches p against the leaves left over from the argument vector.
// It never modifies left or collected: on success it returns the leaves still
// unconsumed and the bindings collected so far, on failure the inputs unchanged.
func matchPattern(p Pattern, left, collected []Leaf) (bool, []Leaf, []Leaf) {
	switch n := p.(type) {
	case Leaf:
		return matchLeaf(n, left, collected)
	case Sequence:
		return matchSequence(n.Children, left, collected)
	case Optional:
		for _, child := range n.Children {
			_, left, collected = matchPattern(child, left, collected)
		}
		return true, left, collected
	case Alternative:
		return matchAlternative(n, left, collected)
	case Repeated:
		return matchRepeated(n, left, collected)
	case AnyOptions:
		return true, left, collected
	}

	return false, left, collected
}

func matchSequence(kids []Pattern, left, collected []Leaf) (bool, []Leaf, []Leaf) {
	l, c := left, collected
	for _, child := range kids {
		var matched bool
		if matched, l, c = matchPattern(child, l, c); !matched {
			return false, left, collected
		}
	}

	return true, l, c
}

// matchAlternative keeps the successful branch leaving the fewest leaves
// unconsumed, the first declared one on ties.
func matchAlternative(n Alternative, left, collected []Leaf) (bool, []Leaf, []Leaf) {
	found := false
	bestLeft, bestCollected := left, collected
	for _, child := range n.Children {
		matched, l, c := matchPattern(child, left, collected)
		if matched && (!found || len(l) < len(bestLeft)) {
			found, bestLeft, bestCollected = true, l, c
		}
	}
	if !found {
		return false, left, collected
	}

	return true, bestLeft, bestCollected
}

// matchRepeated matches the children as a sequence until a repetition fails or
// consumes nothing. At least one repetition must succeed.
func matchRepeated(n Repeated, left, collected []Leaf) (bool, []Leaf, []Leaf) {
	l, c := left, collected
	times := 0
	for {
		matched, nl, nc := matchSequence(n.Children, l, c)
		if !matched {
			break
		}
		times++
		progressed := len(nl) < len(l)
		l, c = nl, nc
		if !progressed {
			break
		}
	}
	if times == 0 {
		return false, left, collected
	}

	return true, l, c
}

func matchLeaf(pattern Leaf, left, collected []Leaf) (bool, []Leaf, []Leaf) {
	pos, match := singleMatch(pattern, left)
	if match == nil {
		return false, left, collected
	}

	rest := make([]Leaf, 0, len(left)-1)
	rest = append(rest, left[:pos]...)
	rest = append(rest, left[pos+1:]...)

	var increment Value
	switch pattern.LeafValue().Kind() {
	case Count:
		increment = CountValue(1)
	case List:
		increment = ListValue(match.LeafValue().AsList()...)
	default:
		return true, rest, appendLeaf(collected, match)
	}

	id := leafIdentity(pattern)
	for i, c := range collected {
		if leafIdentity(c) == id {
			out := append([]Leaf{}, collected...)
			out[i] = c.withValue(c.LeafValue().add(increment))
			return true, rest, out
		}
	}

	return true, rest, appendLeaf(collected, match.withValue(increment))
}

func appendLeaf(collected []Leaf, leaf Leaf) []Leaf {
	out := make([]Leaf, 0, len(collected)+1)
	out = append(out, collected...)
	return append(out, leaf)
}

// singleMatch finds the leaf of left which pattern consumes and returns its
// position and the binding it produces.
func singleMatch(pattern Leaf, left []Leaf) (int, Leaf) {
	switch p := pattern.(type) {
	case Argument:
		for i, l := range left {
			if a, ok := l.(Argument); ok {
				return i, Argument{Name: p.Name, Value: a.Value}
			}
		}
	case Command:
		// a command only ever matches the first positional left
		for i, l := range left {
			if a, ok := l.(Argument); ok {
				if a.Value.Kind() == Text && a.Value.AsText() == p.Name {
					return i, Command{Name: p.Name, Value: BoolValue(true)}
				}
				break
			}
		}
	case OptionRef:
		for i, l := range left {
			if o, ok := l.(OptionRef); ok && o.Short == p.Short && o.Long == p.Long {
				return i, o
			}
		}
	}

	return -1, nil
}
