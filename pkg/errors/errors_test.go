package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("note %q: %w", "abc", ErrNotFound)))
	assert.False(t, IsNotFound(ErrValidation))
	assert.False(t, IsNotFound(nil))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("bad input: %w", ErrValidation)))
	assert.False(t, IsValidation(ErrNotFound))
}

func TestIsStoreUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("redis ping: %w", ErrStoreUnavailable)
	assert.True(t, IsStoreUnavailable(wrapped))
	assert.False(t, IsStoreUnavailable(ErrAlreadyExists))
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(fmt.Errorf("dup: %w", ErrAlreadyExists)))
	assert.False(t, IsAlreadyExists(ErrInvalidState))
}

func TestIsInvalidState(t *testing.T) {
	assert.True(t, IsInvalidState(fmt.Errorf("closed: %w", ErrInvalidState)))
	assert.False(t, IsInvalidState(ErrNotFound))
}
