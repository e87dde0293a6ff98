package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandError(t *testing.T) {
	cause := fmt.Errorf("invalid arguments: %w", stderrors.New("--sarif is required"))
	err := NewCommandError(map[string]string{"sarif": ""}, nil, cause, 1)

	assert.Equal(t, 1, err.ExitCode)
	assert.Equal(t, "FAILED", err.Result.Status)
	assert.Equal(t, cause.Error(), err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestNotImplementedError(t *testing.T) {
	err := NewNotImplementedError("BuildEndpoints", "none")

	var target *NotImplementedError
	assert.True(t, stderrors.As(err, &target))
	assert.Equal(t, `method "BuildEndpoints" is not implemented for "none"`, err.Error())
}
