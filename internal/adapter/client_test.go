package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSON(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"asn":"AS15169"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{UserAgent: "test-agent"})

	var payload struct {
		ASN string `json:"asn"`
	}
	ok := c.FetchJSON(context.Background(), srv.URL, &payload)

	require.True(t, ok)
	assert.Equal(t, "AS15169", payload.ASN)
	assert.Equal(t, "test-agent", gotAgent)
}

func TestFetchJSONFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nothing here", http.StatusNotFound)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "broken", http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>rate limited</html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(ClientConfig{})
			var out map[string]any
			assert.False(t, c.FetchJSON(context.Background(), srv.URL, &out))
		})
	}
}

func TestFetchBodyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: 20 * time.Millisecond})
	assert.Nil(t, c.FetchBody(context.Background(), srv.URL))
}

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain registry text"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{})
	assert.Equal(t, "plain registry text", c.FetchText(context.Background(), srv.URL))

	// Unreachable host collapses to an empty string, not an error.
	assert.Equal(t, "", c.FetchText(context.Background(), "http://127.0.0.1:1/nope"))
}
