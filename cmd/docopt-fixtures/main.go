// Command docopt-fixtures runs docopt fixture files and reports the cases which
// fail.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/napalu/docopt"
	"github.com/napalu/docopt/internal/fixture"
)

const version = "docopt-fixtures 1.0.0"

const usage = `Run docopt fixture files and report the cases which fail.

Fixture files ending in .docopt use the classic format, files ending in .yaml
or .yml the YAML format.

Usage:
  docopt-fixtures [options] <path>...
  docopt-fixtures -h | --help
  docopt-fixtures --version

Options:
  -h --help     Show this screen.
  --version     Show version.
  -q --quiet    Only report failures.
  -v --verbose  Log every parsing stage to stderr.
  --no-color    Disable colored output.
`

type config struct {
	Paths   []string `docopt:"<path>"`
	Quiet   bool
	Verbose bool
	NoColor bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	opts, err := docopt.ParseArgs(usage, argv, version)
	switch {
	case errors.Is(err, docopt.ErrHelpRequested):
		fmt.Fprint(stdout, usage)
		return 0
	case errors.Is(err, docopt.ErrVersionRequested):
		fmt.Fprintln(stdout, version)
		return 0
	case err != nil:
		fmt.Fprintln(stderr, err)
		prog, _ := docopt.ParseDoc(usage)
		if prog != nil {
			fmt.Fprintln(stderr, prog.Usage())
		}
		return 2
	}

	var cfg config
	if err = opts.Bind(&cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	r := &reporter{out: stdout, quiet: cfg.Quiet}
	for _, path := range cfg.Paths {
		cases, err := fixture.Load(path)
		if err != nil {
			logger.Error("cannot load fixtures", "path", path, "error", err)
			r.broken++
			continue
		}
		logger.Debug("loaded fixtures", "path", path, "cases", len(cases))
		for _, c := range cases {
			r.report(fixture.Run(c, docopt.WithLogger(logger)))
		}
	}

	return r.summary()
}

type reporter struct {
	out    io.Writer
	quiet  bool
	passed int
	failed int
	broken int
}

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

func (r *reporter) report(res fixture.Result) {
	if res.Passed {
		r.passed++
		if !r.quiet {
			fmt.Fprintf(r.out, "%s %s\n", passLabel.Sprint("PASS"), res.Case.Name)
		}
		return
	}

	r.failed++
	fmt.Fprintf(r.out, "%s %s\n", failLabel.Sprint("FAIL"), res.Case.Name)
	fmt.Fprintf(r.out, "  argv: %q\n", res.Case.Argv)
	if res.Err != nil {
		fmt.Fprintf(r.out, "  error: %v\n", res.Err)
	}
	if res.Diff != "" {
		fmt.Fprintf(r.out, "  diff (-want +got):\n%s", res.Diff)
	}
}

func (r *reporter) summary() int {
	fmt.Fprintf(r.out, "%d passed, %d failed", r.passed, r.failed)
	if r.broken > 0 {
		fmt.Fprintf(r.out, ", %d files not loaded", r.broken)
	}
	fmt.Fprintln(r.out)
	if r.failed > 0 || r.broken > 0 {
		return 1
	}

	return 0
}
