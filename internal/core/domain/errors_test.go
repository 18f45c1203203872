package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(ErrServiceUnavailable))
	assert.True(t, IsTransient(fmt.Errorf("search index %q: %w", "bot-42", ErrServiceUnavailable)))

	assert.False(t, IsTransient(ErrNotFound))
	assert.False(t, IsTransient(ErrConflict))
	assert.False(t, IsTransient(ErrInvalidArgument))
	assert.False(t, IsTransient(ErrUnknownEndpoint))
	assert.False(t, IsTransient(errors.New("anything else")))
	assert.False(t, IsTransient(nil))
}
