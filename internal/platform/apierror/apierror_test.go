package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByStatus(t *testing.T) {
	err := fmt.Errorf("loading cat: %w", NotFound("Cat not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestWrap_KeepsExistingAPIError(t *testing.T) {
	orig := Unauthorized("Not authorized")
	got := Wrap(orig, http.StatusInternalServerError, "internal error")

	assert.Same(t, orig, got)
	assert.Nil(t, Wrap(nil, http.StatusBadRequest, "x"))
}

func TestStatusOf_PlainErrorIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestForwarder_RendersTypedError(t *testing.T) {
	f := NewForwarder(nil)
	h := f.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return Forbidden("token not valid")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/users/token", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token not valid", body.Message)
	assert.Equal(t, http.StatusForbidden, body.Status)
}

func TestForwarder_HidesInternalCause(t *testing.T) {
	f := NewForwarder(nil)
	h := f.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return Internal(errors.New("connection refused"))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/cats", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
