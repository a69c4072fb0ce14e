package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.NotFound("user not found"), 404},
		{apperrors.InvalidArgument("cannot follow yourself"), 400},
		{apperrors.Conflict("already following"), 409},
		{apperrors.Forbidden("admins only"), 403},
		{assert.AnError, 500},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestPageOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/users?page=3&limit=20&sort_by=-created_at&select=username", nil)
	opts := pageOptions(r)

	assert.Equal(t, int64(3), opts.Page)
	assert.Equal(t, int64(20), opts.Limit)
	assert.Equal(t, "-created_at", opts.SortBy)
	assert.Equal(t, "username", opts.Select)
}

func TestPageOptionsDefaultsWhenAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/users", nil)
	opts := pageOptions(r)

	assert.Equal(t, int64(0), opts.Page)
	assert.Equal(t, int64(0), opts.Limit)
	assert.Empty(t, opts.SortBy)
}
