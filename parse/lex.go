package parse

import "github.com/google/shlex"

// Split breaks a command line into words using shell quoting rules. It is used
// to read argument vectors written as a single line, such as fixture cases.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
