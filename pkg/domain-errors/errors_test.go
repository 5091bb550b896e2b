package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := New(CodeInvalidInput, "password is empty")

	assert.True(t, HasCode(base, CodeInvalidInput))
	assert.True(t, HasCode(fmt.Errorf("estimate: %w", base), CodeInvalidInput))
	assert.False(t, HasCode(base, CodeInternal))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CodeInvariantViolation, "leakage evidence incomplete")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invariant_violation: leakage evidence incomplete: boom", err.Error())
}

func TestIsMatchesByCodeAndMessage(t *testing.T) {
	sentinel := New(CodeInvalidInput, "password is empty")
	wrapped := fmt.Errorf("entropy: %w", New(CodeInvalidInput, "password is empty"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, New(CodeInvalidInput, "other"), sentinel)
}
