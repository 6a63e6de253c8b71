package docopt

import (
	"errors"
	"io"
	"log/slog"

	"github.com/napalu/docopt/internal/util"
)

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(parser *Parser, err *error)

// Parser holds the settings shared by every docstring it parses. A Parser is not
// modified by ParseDoc or Parse and can be shared.
type Parser struct {
	optionsFirst bool
	help         bool
	version      string
	logger       *slog.Logger
}

// Program is a parsed docstring: its usage section, the option table and the
// pattern tree, ready to be matched against any number of argument vectors.
type Program struct {
	parser  *Parser
	usage   string
	options *OptionTable
	pattern Pattern
	fixed   Pattern
}

// Umbrella errors. Every error returned by ParseDoc wraps ErrLanguage, every error
// returned by Program.Match wraps ErrUser.
var (
	ErrLanguage = errors.New("docopt language error")
	ErrUser     = errors.New("user error")
)

// Usage section and grammar errors
var (
	ErrUsageNotFound    = errors.New(`"usage:" (case-insensitive) not found`)
	ErrMultipleUsage    = errors.New(`more than one "usage:" (case-insensitive)`)
	ErrEmptyUsage       = errors.New("usage section names no program")
	ErrMissingEnclosure = errors.New("missing enclosure")
	ErrUnexpectedEnding = errors.New("unexpected ending")
)

// Option errors
var (
	ErrUnexpectedArgument = errors.New("option must not have an argument")
	ErrMissingArgument    = errors.New("option requires argument")
	ErrMalformedOption    = errors.New("malformed option")
	ErrAmbiguousOption    = errors.New("option is not a unique prefix")
	ErrOptionNotUnique    = errors.New("option is not unique")
	ErrArityConflict      = errors.New("option redefined with a different arity")
)

// Match errors. ErrPatternNotMatched means the usage pattern rejected argv;
// ErrUnconsumedTokens means it matched but arguments were left over.
var (
	ErrPatternNotMatched = errors.New("pattern not matched")
	ErrUnconsumedTokens  = errors.New("unconsumed tokens")
)

// Flow errors returned by Match when the corresponding Parser option is enabled
var (
	ErrHelpRequested    = errors.New("help requested")
	ErrVersionRequested = errors.New("version requested")
)

// Configuration errors
var (
	ErrNilLogger = errors.New("logger must not be nil")
)

// Opts access and binding errors
var (
	ErrKeyNotFound               = errors.New("key not found")
	ErrValueType                 = errors.New("value has the wrong type")
	ErrBindTarget                = errors.New("bind target must be a non-nil pointer to a struct")
	ErrUnsupportedTypeConversion = util.ErrUnsupportedTypeConversion
	ErrConversion                = util.ErrConversion
)

const (
	FmtErrorWithString = "%w: %s"
)

// IsLanguageError reports whether err was caused by a malformed docstring.
func IsLanguageError(err error) bool {
	return errors.Is(err, ErrLanguage)
}

// IsUserError reports whether err was caused by an argument vector which does not
// fit the docstring.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUser)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
