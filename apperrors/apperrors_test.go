package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Respond(ctx, err)
	return recorder
}

func TestRespondStatusPerKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{BusinessRule("out of stock"), http.StatusBadRequest},
		{Unauthenticated("who are you"), http.StatusUnauthorized},
		{Forbidden("admins only"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Upstream("gateway sad", nil), http.StatusBadGateway},
		{NotImplemented("later"), http.StatusNotImplemented},
		{Internal("boom", errors.New("disk on fire")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		recorder := respond(t, tc.err)
		assert.Equal(t, tc.status, recorder.Code, tc.err.Error())
	}
}

func TestRespondStatusOverride(t *testing.T) {
	err := &Error{Kind: KindUpstream, Message: "Address not found", Status: http.StatusNotFound}
	recorder := respond(t, err)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"detail":"Address not found"}`, recorder.Body.String())
}

func TestRespondHidesUnknownErrors(t *testing.T) {
	recorder := respond(t, errors.New("sql: secret table does not exist"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "secret table")
	assert.JSONEq(t, `{"detail":"Internal server error"}`, recorder.Body.String())
}

func TestIsKindUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("while registering: %w", Conflict("Email already registered"))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Internal("Failed to load product", errors.New("timeout"))
	require.Equal(t, "Failed to load product: timeout", err.Error())
	assert.Equal(t, "timeout", errors.Unwrap(err).Error())
}
