package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoIPLookupASN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		w.Write([]byte(`{"ip":"8.8.8.8","asn":"AS15169","org":"Google LLC"}`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(NewClient(ClientConfig{}), srv.URL)
	assert.Equal(t, "15169", g.LookupASN(context.Background(), "8.8.8.8"))
}

func TestGeoIPLookupASNDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/example.com/json/", r.URL.Path)
		w.Write([]byte(`{"asn":"64496"}`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(NewClient(ClientConfig{}), srv.URL)
	assert.Equal(t, "64496", g.LookupASN(context.Background(), "example.com"))
}

func TestGeoIPLookupASNAbsent(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"error payload", http.StatusOK, `{"error":true,"reason":"Invalid IP Address"}`},
		{"missing field", http.StatusOK, `{"ip":"8.8.8.8"}`},
		{"not found", http.StatusNotFound, `{}`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewGeoIPClient(NewClient(ClientConfig{}), srv.URL)
			assert.Equal(t, "", g.LookupASN(context.Background(), "8.8.8.8"))
		})
	}
}
