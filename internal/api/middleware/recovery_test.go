package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scoreboard/internal/api/apierr"
	"github.com/mcoot/scoreboard/internal/middleware"
	"github.com/mcoot/scoreboard/internal/testutil"
)

func TestRecoveryWritesJSONError(t *testing.T) {
	h := Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, apierr.CodeInternalError, body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
}

func TestRecoveryNamesRequestID(t *testing.T) {
	h := middleware.RequestID(Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error (request req-42)", body.Error.Message)
}
