package typesetting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.5\n%fake body"

func TestYtoTechJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/builds/sync", r.URL.Path)
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))

		var req buildRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pdflatex", req.Compiler)
		assert.Equal(t, []resource{{Main: true, Content: `\documentclass{article}`}}, req.Resources)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(samplePDF))
	}))
	defer server.Close()

	pdf, err := NewYtoTechJSON(server.URL+"/", DefaultEngine).Compile(context.Background(), `\documentclass{article}`)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, string(pdf))
}

func TestYtoTechGET_SendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, `\documentclass{article} 50%`, r.URL.Query().Get("content"))
		assert.Equal(t, "xelatex", r.URL.Query().Get("compiler"))
		_, _ = w.Write([]byte(samplePDF))
	}))
	defer server.Close()

	pdf, err := NewYtoTechGET(server.URL, "xelatex").Compile(context.Background(), `\documentclass{article} 50%`)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, string(pdf))
}

func TestCheckResponse_Failures(t *testing.T) {
	longBody := strings.Repeat("e", 500)

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantMsg: "HTTP 500: boom"},
		{name: "long error body truncated", status: http.StatusBadRequest, body: longBody, wantMsg: "HTTP 400: " + longBody[:300]},
		{name: "empty error body", status: http.StatusBadGateway, body: "", wantMsg: "HTTP 502: unknown error"},
		{name: "not a pdf", status: http.StatusOK, body: "<html>log</html>", wantMsg: "got non-PDF response: <html>log</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewYtoTechJSON(server.URL, DefaultEngine).Compile(context.Background(), "x")
			require.Error(t, err)

			var backendErr *BackendError
			require.True(t, errors.As(err, &backendErr))
			assert.Equal(t, "YtoTech JSON POST", backendErr.Backend)
			assert.Equal(t, tt.wantMsg, backendErr.Message)
		})
	}
}

func TestYtoTech_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(samplePDF))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := NewYtoTechJSON(server.URL, DefaultEngine).Compile(ctx, "x")
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "request timeout", backendErr.Message)
}

func TestYtoTech_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewYtoTechGET(url, DefaultEngine).Compile(context.Background(), "x")
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.True(t, strings.HasPrefix(backendErr.Message, "network error: "))
}
