package analyze_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/hackhub/internal/analyze"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/analyze-hackathon", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ETHIndia 2025", body["hackathon_name"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"hackathon_name":"ETHIndia 2025","difficulty":"Intermediate"}}`))
	}))
	defer srv.Close()

	client, err := analyze.NewClient(srv.URL, 2*time.Second, discardLogger())
	require.NoError(t, err)

	data, err := client.Analyze(context.Background(), "ETHIndia 2025")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hackathon_name":"ETHIndia 2025","difficulty":"Intermediate"}`, string(data))
}

func TestAnalyzeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"model not loaded"}`))
	}))
	defer srv.Close()

	client, err := analyze.NewClient(srv.URL, 2*time.Second, discardLogger())
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "Cosmohack1")
	require.Error(t, err)
	assert.EqualError(t, err, "model not loaded")
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
	}))
	defer srv.Close()

	client, err := analyze.NewClient(srv.URL, 2*time.Second, discardLogger(),
		analyze.WithRetries(2), analyze.WithBackoff(time.Millisecond))
	require.NoError(t, err)

	data, err := client.Analyze(context.Background(), "Cosmohack1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
	assert.Equal(t, int32(2), calls.Load())
}

func TestAnalyzeUnavailableAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := analyze.NewClient(srv.URL, 2*time.Second, discardLogger(),
		analyze.WithRetries(1), analyze.WithBackoff(time.Millisecond))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "Cosmohack1")
	require.ErrorIs(t, err, analyze.ErrUnavailable)
}

func TestAnalyzeEmptyName(t *testing.T) {
	client, err := analyze.NewClient("http://localhost:9", time.Second, discardLogger())
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "")
	require.Error(t, err)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := analyze.NewClient("not a url", time.Second, discardLogger())
	require.Error(t, err)
}
