package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NotFound("document missing")
		assert.Equal(t, "document missing", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := stderrors.New("row not found")
		err := Wrap(cause, ErrCodeNotFound, "document missing")
		assert.Equal(t, "document missing: row not found", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("queue unreachable")
	err := Wrap(cause, ErrCodeDispatch, "enqueue failed")
	require.ErrorIs(t, err, cause)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestCodePredicates(t *testing.T) {
	cases := []struct {
		err   error
		check func(error) bool
	}{
		{NotFound("x"), IsNotFound},
		{UnsupportedParser("x"), IsUnsupportedParser},
		{FeatureDisabled("x"), IsFeatureDisabled},
		{Dispatch("x"), IsDispatch},
		{Validation("x"), IsValidation},
		{Internal("x"), IsInternal},
	}
	for _, tc := range cases {
		assert.True(t, tc.check(tc.err))
	}

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("outer: %w", UnsupportedParserf("parser %q not registered", "bogus"))
	assert.True(t, IsUnsupportedParser(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeFeatureDisabled, GetCode(FeatureDisabled("off")))
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
}

func TestGetField(t *testing.T) {
	err := ValidationField("parser", "parser is required")
	assert.Equal(t, "parser", GetField(err))
	assert.Empty(t, GetField(stderrors.New("plain")))
}
