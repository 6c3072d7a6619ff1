package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(ErrorCodeNotFound, "contact %q does not exist", "c1")
	assert.Equal(t, `clover: not_found: contact "c1" does not exist`, err.Error())

	bare := &Error{Code: ErrorCodeConflict}
	assert.Equal(t, "clover: conflict", bare.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, ErrorCodeValidation, CodeOf(NewError(ErrorCodeValidation, "bad")))
	assert.Equal(t, ErrorCodeUnknown, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewError(ErrorCodeConflict, "inner"))
	assert.Equal(t, ErrorCodeConflict, CodeOf(wrapped))
}

func TestAsTyped(t *testing.T) {
	assert.Nil(t, AsTyped(nil))

	typed := NewError(ErrorCodeStore, "down")
	assert.Same(t, typed, AsTyped(typed))

	converted := AsTyped(errors.New("plain"))
	assert.Equal(t, ErrorCodeUnknown, converted.Code)
	assert.Equal(t, "plain", converted.Message)
}
