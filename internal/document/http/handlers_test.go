package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/accessguide/accessguide-backend/internal/document"
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

func send(r http.Handler, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/outline", bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

const page = `<html lang="en"><head><title>Guide</title></head><body><main><h1>Hello</h1></main></body></html>`

func TestOutline_HTMLBody(t *testing.T) {
	rr := send(setupRouter(), "text/html; charset=utf-8", []byte(page))
	require.Equal(t, http.StatusOK, rr.Code)

	var o document.Outline
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &o))
	assert.Equal(t, "Guide", o.Title)
	assert.Equal(t, []document.Heading{{Level: 1, Text: "Hello"}}, o.Headings)
	assert.Empty(t, o.Issues)
}

func TestOutline_JSONBody(t *testing.T) {
	body, err := json.Marshal(map[string]string{"html": page})
	require.NoError(t, err)

	rr := send(setupRouter(), "application/json", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Guide"`)
}

func TestOutline_Errors(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusBadRequest, send(r, "application/json", []byte(`{"html":`)).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, "text/html", []byte("  ")).Code)

	big := []byte("<p>" + strings.Repeat("a", MaxDocumentSize) + "</p>")
	assert.Equal(t, http.StatusRequestEntityTooLarge, send(r, "text/html", big).Code)
}
