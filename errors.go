package splitly

import (
	"errors"
	"fmt"
)

// ErrInvalidArguments flags malformed trailing arguments on a split or count call
var ErrInvalidArguments = errors.New("splitly: invalid arguments")

// ErrUnknownStrategy flags a typed call naming a strategy that is not registered
var ErrUnknownStrategy = errors.New("splitly: unknown strategy")

// UnknownOperationError represents a dynamic invocation that no split or count
// operation matches. Dispatch returns it unchanged on any non-match so callers
// observe the same failure they would have raised themselves.
type UnknownOperationError struct {
	Method string
}

// Error returns the error message
func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("splitly: unknown operation: %v", e.Method)
}
