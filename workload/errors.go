package workload

import "errors"

var (
	// ErrParse indicates a malformed trace line.
	ErrParse = errors.New("workload: malformed trace")

	// ErrUnknownID indicates a free of an id that is not live.
	ErrUnknownID = errors.New("workload: free of unknown id")

	// ErrDuplicateID indicates an allocation bound to an id that is still live.
	ErrDuplicateID = errors.New("workload: id already live")

	// ErrCorrupted indicates a payload that changed while its block was live.
	ErrCorrupted = errors.New("workload: payload corrupted")
)
