package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestHealth(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rec.Body.String())
}

func TestValidateEndpoint(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/validate", ValidateRequest{
		Engine:   "key-value-store",
		Document: "maxmemory 64mb\nmaxmemory-policy allkeys-lru\n",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, "true", string(envelope["success"]))

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
	assert.Contains(t, resp.Normalized, "maxmemory 67108864\n")
}

func TestValidateEndpointReportsFindings(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/validate", ValidateRequest{
		Engine:   "document-database",
		Document: "net:\n  port: 70000\n",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "net.port", resp.Errors[0].Path)
	assert.Empty(t, resp.Normalized)
}

func TestValidateEndpointRejectsBadRequest(t *testing.T) {
	s := NewServer(nil, "")

	// missing document field
	rec := doRequest(t, s, http.MethodPost, "/api/v1/validate", map[string]string{"engine": "redis"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestRenderEndpoint(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/render", ValidateRequest{
		Engine:   "redis",
		Document: "maxmemory 64mb\n",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "maxmemory 67108864\n")
}

func TestRenderEndpointRejectsInvalidDocument(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/render", ValidateRequest{
		Engine:   "key-value-store",
		Document: "port 70000\n",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestListSchemas(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/schemas", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"engines":["document-database","key-value-store"]}`, string(envelope["data"]))
}

func TestGetSchema(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/schemas/redis", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/schemas/graph-database", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunsWithoutStore(t *testing.T) {
	s := NewServer(nil, "")

	rec := doRequest(t, s, http.MethodGet, "/api/v1/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer(nil, "https://ops.example.com")

	rec := doRequest(t, s, http.MethodOptions, "/api/v1/validate", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://ops.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
