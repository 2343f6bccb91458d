package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeNotFound, "missing")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches wrapped inner code", func(t *testing.T) {
		inner := New(CodeValidation, "bad line")
		outer := Wrap(inner, CodeBadRequest, "request rejected")
		assert.True(t, HasCode(outer, CodeBadRequest))
		assert.True(t, HasCode(outer, CodeValidation))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("context: %w", New(CodeForbidden, "gate closed"))
		assert.True(t, HasCode(err, CodeForbidden))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps cause in chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "contact lookup failed")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "contact lookup failed: connection refused", err.Error())
	})
}

func TestRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(CodeUnavailable, "store down")))
	assert.True(t, IsRetryable(New(CodeTimeout, "ocr timed out")))
	assert.False(t, IsRetryable(New(CodeValidation, "not an image")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "dup")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
