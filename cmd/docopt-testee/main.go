// Command docopt-testee reads a docstring on stdin, matches its command line
// arguments against it and prints the bindings as JSON. Failures print
// "user-error" or "language-error" instead, so that fixture runners written in
// any language can drive it.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/napalu/docopt"
	"github.com/napalu/docopt/internal/util"
)

func main() {
	doc, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := run(string(doc), os.Args[1:], util.IsTerminal(os.Stdout))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func run(doc string, argv []string, pretty bool) (string, error) {
	var result any
	opts, err := docopt.NewParser().Parse(doc, argv)
	switch {
	case docopt.IsLanguageError(err):
		result = "language-error"
	case docopt.IsUserError(err):
		result = "user-error"
	case err != nil:
		return "", err
	default:
		result = opts
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err = enc.Encode(result); err != nil {
		return "", err
	}

	return buf.String(), nil
}
