package searcher

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidState matches every InvalidStateError.
	ErrInvalidState = errors.New("invalid state")
	// ErrConfiguration matches every ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")
)

// InvalidStateError reports a non-terminal state in which the agent to move has
// no legal actions.
type InvalidStateError struct {
	Agent int
	Depth int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("agent %d has no legal actions in a non-terminal state (depth %d)", e.Agent, e.Depth)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ConfigurationError reports a search parameter outside its valid range.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
