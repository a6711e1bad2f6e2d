package command

import "errors"

var (
	// ErrUnknownCommandKind reports a command_type outside the known set.
	ErrUnknownCommandKind = errors.New("unknown command kind")

	// ErrMalformedArguments reports a payload whose envelope or
	// command_arguments cannot be decoded into the variant's fields.
	ErrMalformedArguments = errors.New("malformed command arguments")
)
