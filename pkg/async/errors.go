package async

import "errors"

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async: timeout waiting for result")

	// ErrNoFutures is returned when WaitAny or ExecAny is called with no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
