package cli

import "errors"

var (
	errNoEventLog = errors.New("events are only recorded by the sqlite backend")
	errNoTerminal = errors.New("the interactive board needs a terminal; use a subcommand (see --help)")
)
