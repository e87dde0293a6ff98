package errors

import (
	"fmt"
)

// NotImplementedError reports a method a framework variant does not provide.
type NotImplementedError struct {
	MethodName    string
	FrameworkName string
}

// Implement the error interface for NotImplementedError
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("method %q is not implemented for %q", e.MethodName, e.FrameworkName)
}

// Constructor for NotImplementedError
func NewNotImplementedError(methodName, frameworkName string) error {
	return &NotImplementedError{
		MethodName:    methodName,
		FrameworkName: frameworkName,
	}
}

// CommandResult is the machine readable outcome of a failed command.
type CommandResult struct {
	Args    interface{} `json:"args"`
	Result  interface{} `json:"result,omitempty"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// CommandError represents an error that occurred during command execution, storing relevant results.
type CommandError struct {
	ExitCode    int
	CommonError string
	Result      CommandResult
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.err
}

// NewCommandError creates a new CommandError instance, encapsulating args, result, and the error message.
func NewCommandError(args interface{}, result interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Result: CommandResult{
			Args:    args,
			Result:  result,
			Status:  "FAILED",
			Message: err.Error(),
		},
		err: err,
	}
}
