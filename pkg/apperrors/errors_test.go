package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("user %s not found", "abc")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already following")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("admins only")))
	assert.Equal(t, KindInvalidArgument, KindOf(InvalidArgument("cannot follow yourself")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	inner := Conflict("duplicate edge")
	wrapped := fmt.Errorf("creating follow: %w", inner)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsConflict(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("write concern failed")
	err := Wrap(KindConflict, cause, "saving group")
	assert.Equal(t, "saving group: write concern failed", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("user %s not found", "42")
	assert.Equal(t, "user 42 not found", err.Error())
}
