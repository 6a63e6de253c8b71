package docopt

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParserWith(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name    string
		configs []ConfigureParserFunc
		want    Parser
		wantErr error
	}{
		{
			name: "defaults",
			want: Parser{logger: discardLogger},
		},
		{
			name:    "options first",
			configs: []ConfigureParserFunc{WithOptionsFirst(true)},
			want:    Parser{optionsFirst: true, logger: discardLogger},
		},
		{
			name:    "help and version",
			configs: []ConfigureParserFunc{WithHelp(true), WithVersion("1.2.3")},
			want:    Parser{help: true, version: "1.2.3", logger: discardLogger},
		},
		{
			name:    "logger",
			configs: []ConfigureParserFunc{WithLogger(logger)},
			want:    Parser{logger: logger},
		},
		{
			name:    "nil logger",
			configs: []ConfigureParserFunc{WithHelp(true), WithLogger(nil)},
			wantErr: ErrNilLogger,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParserWith(tt.configs...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *p)
		})
	}
}

func TestWithOptionsFirst(t *testing.T) {
	doc := "Usage: prog [-v] [<args>...]"

	tests := []struct {
		name         string
		optionsFirst bool
		want         Opts
	}{
		{
			name:         "options anywhere",
			optionsFirst: false,
			want:         Opts{"-v": BoolValue(true), "<args>": ListValue("a")},
		},
		{
			name:         "options first",
			optionsFirst: true,
			want:         Opts{"-v": BoolValue(false), "<args>": ListValue("a", "-v")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParserWith(WithOptionsFirst(tt.optionsFirst))
			require.NoError(t, err)
			got, err := p.Parse(doc, []string{"a", "-v"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithHelp(t *testing.T) {
	doc := "Usage: prog [-h]"

	p, err := NewParserWith(WithHelp(true))
	require.NoError(t, err)
	_, err = p.Parse(doc, []string{"-h"})
	assert.ErrorIs(t, err, ErrHelpRequested)

	p, err = NewParserWith(WithHelp(false))
	require.NoError(t, err)
	got, err := p.Parse(doc, []string{"-h"})
	require.NoError(t, err)
	assert.True(t, got.Has("-h"))
}
