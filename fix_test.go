package docopt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPattern(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "repeated argument collects a list",
			doc:  "Usage: prog <file>...",
			want: "Sequence(Sequence(Repeated(Argument('<file>', []))))",
		},
		{
			name: "flag given twice is counted",
			doc:  "Usage: prog -v -v",
			want: "Sequence(Sequence(Option('-v', None, 0, 0), Option('-v', None, 0, 0)))",
		},
		{
			name: "command given twice is counted",
			doc:  "Usage: prog go go",
			want: "Sequence(Sequence(Command('go', 0), Command('go', 0)))",
		},
		{
			name: "alternatives do not repeat",
			doc:  "Usage: prog <a> | <a>",
			want: "Sequence(Sequence(Alternative(Argument('<a>', None), Argument('<a>', None))))",
		},
		{
			name: "repeated option default is split",
			doc:  "Usage: prog [--path=<p>]...\n\nOptions:\n  --path=<p>  Path [default: ./ /usr]",
			want: "Sequence(Sequence(Repeated(Optional(Option(None, '--path', 1, ['./', '/usr'])))))",
		},
		{
			name: "repeating leaf is marked in every branch",
			doc:  "Usage: prog a <x>...\n  prog b <x>",
			want: "Sequence(Alternative(Sequence(Command('a', False), Repeated(Argument('<x>', []))), Sequence(Command('b', False), Argument('<x>', []))))",
		},
		{
			name: "options placeholder holds the options not used elsewhere",
			doc:  "Usage: prog [options] -a\n\nOptions:\n  -a     A.\n  -b     B.\n  --all  All.",
			want: "Sequence(Sequence(Optional(Optional(Option('-b', None, 0, False), Option(None, '--all', 0, False))), Option('-a', None, 0, False)))",
		},
		{
			name: "options placeholder with nothing left",
			doc:  "Usage: prog [options] -a",
			want: "Sequence(Sequence(Optional(Optional()), Option('-a', None, 0, False)))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseDoc(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prog.Fixed().String(), repr.String(prog.Fixed(), repr.Indent("  ")))
		})
	}
}

func TestFixPatternIdempotent(t *testing.T) {
	for _, doc := range []string{
		"Usage: prog [options] <file>...\n\nOptions:\n  -v  Verbose.\n  --path=<p>  Path [default: a b]",
		"Usage: prog -v -v [--path=<p>]...",
		"Usage: prog go go | stop",
	} {
		prog, err := ParseDoc(doc)
		require.NoError(t, err)

		once := fixPattern(prog.Pattern(), prog.options)
		twice := fixPattern(once, prog.options)
		assert.Equal(t, once.String(), twice.String(), doc)
		assert.Equal(t, prog.Fixed().String(), once.String(), doc)

		resolved := resolveAnyOptions(prog.Pattern(), prog.options)
		assert.Equal(t, resolved.String(), resolveAnyOptions(resolved, prog.options).String(), doc)
	}
}

func TestFixPatternLeavesInputUntouched(t *testing.T) {
	prog, err := ParseDoc("Usage: prog [options] <x>...\n\nOptions:\n  -a  A.")
	require.NoError(t, err)
	assert.Equal(t, "Sequence(Sequence(Optional(AnyOptions()), Repeated(Argument('<x>', None))))", prog.Pattern().String())
}

func TestOccurrences(t *testing.T) {
	a := Command{Name: "a", Value: BoolValue(false)}
	b := Command{Name: "b", Value: BoolValue(false)}
	c := Command{Name: "c", Value: BoolValue(false)}

	got := occurrences(Sequence{Children: []Pattern{Alternative{Children: []Pattern{a, b}}, c}})
	assert.Equal(t, map[string]int{leafIdentity(a): 1, leafIdentity(b): 1, leafIdentity(c): 1}, got)

	got = occurrences(Alternative{Children: []Pattern{Sequence{Children: []Pattern{a, a}}, Sequence{Children: []Pattern{a, b}}}})
	assert.Equal(t, map[string]int{leafIdentity(a): 2, leafIdentity(b): 1}, got)

	got = occurrences(Sequence{Children: []Pattern{Optional{Children: []Pattern{a}}, Repeated{Children: []Pattern{a, b}}}})
	assert.Equal(t, map[string]int{leafIdentity(a): 3, leafIdentity(b): 2}, got)

	got = occurrences(Optional{Children: []Pattern{AnyOptions{}}})
	assert.Empty(t, got)
}

func TestParseDocManyAlternativeGroups(t *testing.T) {
	var usage strings.Builder
	usage.WriteString("Usage: prog")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&usage, " [--a%d | --b%d]", i, i)
	}
	usage.WriteString(" [--a0]")

	start := time.Now()
	prog, err := ParseDoc(usage.String())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	got, err := prog.Match([]string{"--a0", "--b29", "--a0"})
	require.NoError(t, err)
	assert.Equal(t, CountValue(2), got["--a0"])
	assert.Equal(t, BoolValue(true), got["--b29"])
	assert.Equal(t, BoolValue(false), got["--a1"])
	assert.Len(t, got, 60)
}
