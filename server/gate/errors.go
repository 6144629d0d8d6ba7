package gate

import "errors"

var (
	// ErrInvalidEvent is returned when a drop event lacks the player or the
	// item dropped. Such an event is rejected without being cancelled.
	ErrInvalidEvent = errors.New("invalid drop event")
	// ErrConfiguration is returned when the configuration does not allow an
	// operation to complete, for example when warnings are enabled without a
	// warning message.
	ErrConfiguration = errors.New("invalid configuration")
)
