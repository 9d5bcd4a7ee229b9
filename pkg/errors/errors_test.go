// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{"not_found", errors.ErrNotFound, "step not found", "[NOT_FOUND] step not found"},
		{"config_invalid", errors.ErrConfigValid, "target declares no types", "[CONFIG_INVALID] target declares no types"},
		{"integrity", errors.ErrIntegrity, "missing from collection", "[INTEGRITY] missing from collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrUnknownKind, "unknown step kind %q", "explode")
	assert.Equal(t, `unknown step kind "explode"`, err.Message)
}

func TestWrap(t *testing.T) {
	base := stderrors.New("disk full")

	err := errors.Wrap(base, errors.ErrStorageWrite, "flush state")
	require.NotNil(t, err)
	assert.Equal(t, "[STORAGE_WRITE] flush state: disk full", err.Error())
	assert.True(t, stderrors.Is(err, base))
	assert.Equal(t, base, stderrors.Unwrap(err))

	assert.Nil(t, errors.Wrap(nil, errors.ErrApply, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrApply, "nothing %d", 1))
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrApply, "first")
	b := errors.New(errors.ErrApply, "second")
	c := errors.New(errors.ErrMatch, "third")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrApply, "rename failed").
		WithDetail("step", "abc").
		WithDetails(map[string]interface{}{"path": "Assets/Rock.png", "priority": 3})

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "abc", details["step"])
	assert.Equal(t, "Assets/Rock.png", details["path"])
	assert.Equal(t, 3, details["priority"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestCodeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errors.New(errors.ErrIntegrity, "gone"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrIntegrity))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrApply))
	assert.Equal(t, errors.ErrIntegrity, errors.GetErrorCode(wrapped))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}
