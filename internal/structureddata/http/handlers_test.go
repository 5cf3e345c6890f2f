package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New().Register(r.Group("/api/v1"))
	return r
}

func post(t *testing.T, r http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req, err := http.NewRequest(http.MethodPost, "/api/v1/structured-data", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestTypes(t *testing.T) {
	r := setupRouter()
	req, err := http.NewRequest(http.MethodGet, "/api/v1/structured-data/types", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Types []struct {
			Type     string   `json:"type"`
			Required []string `json:"required"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Types, 12)
}

func TestGenerate(t *testing.T) {
	r := setupRouter()

	rr := post(t, r, map[string]any{
		"type":   "Organization",
		"fields": map[string]any{"name": "Access Guide", "url": "https://example.com"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		JSONLD map[string]any `json:"json_ld"`
		Script string         `json:"script"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Organization", body.JSONLD["@type"])
	assert.Contains(t, body.Script, "application/ld+json")
}

func TestGenerate_Errors(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name string
		body any
		want int
	}{
		{"no type", map[string]any{"fields": map[string]any{}}, http.StatusBadRequest},
		{"unknown type", map[string]any{"type": "Spaceship"}, http.StatusUnprocessableEntity},
		{"missing fields", map[string]any{"type": "Event", "fields": map[string]any{"name": "Meetup"}}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, r, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}

	rr := post(t, r, map[string]any{"type": "Event", "fields": map[string]any{"name": "Meetup"}})
	var body struct {
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"startDate", "location"}, body.Missing)
}
