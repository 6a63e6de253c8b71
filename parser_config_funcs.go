package docopt

import "log/slog"

// NewParserWith allows initialization of Parser using option functions. The caller should always test for error on
// return because Parser will be nil when an error occurs during initialization.
//
// Configuration example:
//
//	parser, err := NewParserWith(
//		WithOptionsFirst(true),
//		WithHelp(true),
//		WithVersion("naval_fate 2.0"))
func NewParserWith(configs ...ConfigureParserFunc) (*Parser, error) {
	parser := NewParser()

	var err error
	for _, config := range configs {
		config(parser, &err)
		if err != nil {
			return nil, err
		}
	}

	return parser, err
}

// WithOptionsFirst stops option recognition at the first positional argument:
// it and everything after it are bound as positional arguments.
func WithOptionsFirst(value bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.optionsFirst = value
	}
}

// WithHelp makes Match return ErrHelpRequested when -h or --help is given.
func WithHelp(value bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.help = value
	}
}

// WithVersion makes Match return ErrVersionRequested when --version is given.
// An empty version disables the check.
func WithVersion(version string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.version = version
	}
}

// WithLogger sets the logger debug records of each parsing stage are written to.
func WithLogger(logger *slog.Logger) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if logger == nil {
			*err = ErrNilLogger
			return
		}
		parser.logger = logger
	}
}
