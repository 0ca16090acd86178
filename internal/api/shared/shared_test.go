package shared_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientsure/ai-gateway/internal/api/shared"
)

func TestTraceID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := shared.SetTraceID(context.Background())
	traceID := shared.GetTraceID(ctx)

	assert.NotEmpty(t, traceID)
	assert.NotEqual(t, traceID, shared.GetTraceID(shared.SetTraceID(context.Background())),
		"each request gets its own trace ID")
}

func TestGetTraceID_MissingReturnsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shared.GetTraceID(context.Background()))
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/ai/generate", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	shared.RespondWithError(rec, req, http.StatusBadRequest, "Invalid prompt provided")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Error   string `json:"error"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid prompt provided", resp.Error)
	assert.NotEmpty(t, resp.TraceID, "error responses carry the trace ID for correlation")
}

func TestDecodeJSON_RejectsNonStringField(t *testing.T) {
	t.Parallel()

	var target struct {
		Prompt string `json:"prompt"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"prompt":42}`))
	assert.Error(t, shared.DecodeJSON(req, &target))
}
