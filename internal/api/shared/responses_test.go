package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/families", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]any{"success": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Run("carries the trace ID from the context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		r = r.WithContext(SetTraceID(r.Context()))
		w := httptest.NewRecorder()

		RespondWithError(w, r, http.StatusForbidden, "You are not a member of this family", CodeForbidden)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "You are not a member of this family", resp.Error)
		assert.Equal(t, CodeForbidden, resp.Code)
		assert.Equal(t, GetTraceID(r.Context()), resp.TraceID)
	})

	t.Run("omits the trace ID when none is set", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		w := httptest.NewRecorder()

		RespondWithError(w, r, http.StatusNotFound, "Not found", CodeNotFound)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.TraceID)
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/voice/generate", nil)
	w := httptest.NewRecorder()

	err := errors.New("dial tcp: connection refused to postgres://user:secret@db/remnant")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", CodeInternalError, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The raw error never reaches the client.
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "connection refused")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, CodeInternalError, resp.Code)
}

func TestTraceIDGeneration(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	ctx := SetTraceID(context.Background())
	first := GetTraceID(ctx)
	assert.Regexp(t, hexPattern, first)

	second := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		Email string `validate:"required,email"`
	}

	t.Run("tag validation", func(t *testing.T) {
		assert.Error(t, ValidateRequest(tagged{Email: "not-an-email"}))
		assert.NoError(t, ValidateRequest(tagged{Email: "ok@example.com"}))
	})

	t.Run("custom Validate method takes precedence", func(t *testing.T) {
		custom := customValidated{fail: true}
		assert.Error(t, ValidateRequest(custom))

		custom.fail = false
		assert.NoError(t, ValidateRequest(custom))
	})
}

type customValidated struct {
	fail bool
}

func (c customValidated) Validate() error {
	if c.fail {
		return errors.New("custom validation failed")
	}
	return nil
}
