package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun(t *testing.T) {
	color.NoColor = true

	passing := writeFixture(t, "pass.docopt", "r\"\"\"Usage: prog [-a]\n\n\"\"\"\n$ prog -a\n{\"-a\": true}\n")
	failing := writeFixture(t, "fail.yaml", "- doc: \"Usage: prog [-a]\"\n  cases:\n    - argv: []\n      want: {\"-a\": true}\n")

	tests := []struct {
		name     string
		argv     []string
		code     int
		contains []string
		excludes []string
	}{
		{
			name:     "passing fixture",
			argv:     []string{passing},
			code:     0,
			contains: []string{"PASS pass.docopt/1/1", "1 passed, 0 failed"},
		},
		{
			name:     "quiet hides passes",
			argv:     []string{"-q", passing},
			code:     0,
			contains: []string{"1 passed, 0 failed"},
			excludes: []string{"PASS"},
		},
		{
			name:     "failing fixture",
			argv:     []string{"--no-color", passing, failing},
			code:     1,
			contains: []string{"FAIL fail.yaml/0/1", "diff (-want +got)", "1 passed, 1 failed"},
		},
		{
			name:     "missing file",
			argv:     []string{filepath.Join(t.TempDir(), "missing.docopt")},
			code:     1,
			contains: []string{"0 passed, 0 failed, 1 files not loaded"},
		},
		{
			name:     "help",
			argv:     []string{"--help"},
			code:     0,
			contains: []string{"Usage:", "--no-color"},
		},
		{
			name:     "version",
			argv:     []string{"--version"},
			code:     0,
			contains: []string{version},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			code := run(tt.argv, stdout, stderr)
			assert.Equal(t, tt.code, code, stderr.String())
			for _, s := range tt.contains {
				assert.Contains(t, stdout.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, stdout.String(), s)
			}
		})
	}
}

func TestRunUsageError(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(nil, stdout, stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "user error")
	assert.Contains(t, stderr.String(), "docopt-fixtures [options] <path>...")
	assert.Empty(t, stdout.String())
}
