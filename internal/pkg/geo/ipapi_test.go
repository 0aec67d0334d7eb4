package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *IPAPIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &IPAPIClient{BaseURL: srv.URL, HTTPClient: srv.Client()}
}

func TestIPAPIClientLookup(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"41.58.0.1","country_code":"NG","country_name":"Nigeria"}`))
	})

	code, err := c.Lookup(context.Background(), "41.58.0.1")
	require.NoError(t, err)
	assert.Equal(t, "NG", code)
	assert.Equal(t, "/41.58.0.1/json/", gotPath)
}

func TestIPAPIClientLookupStaysUnderBasePath(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"country_code":"GH"}`))
	}))
	t.Cleanup(srv.Close)
	c := &IPAPIClient{BaseURL: srv.URL + "/v1", HTTPClient: srv.Client()}

	for _, ip := range []string{"../../internal/anything?", "..", "example.com", ""} {
		_, err := c.Lookup(context.Background(), ip)
		assert.Error(t, err, "ip %q", ip)
	}
	assert.Empty(t, paths)

	code, err := c.Lookup(context.Background(), " 41.58.0.1 ")
	require.NoError(t, err)
	assert.Equal(t, "GH", code)
	assert.Equal(t, []string{"/v1/41.58.0.1/json/"}, paths)
}

func TestIPAPIClientLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "error payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":true,"reason":"Invalid IP Address"}`))
			},
		},
		{
			name: "no country",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"ip":"10.0.0.1","reserved":true}`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html></html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Lookup(context.Background(), "10.0.0.1")
			assert.Error(t, err)
		})
	}
}

func TestIPAPIClientTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c.HTTPClient.Timeout = 50 * time.Millisecond

	_, err := c.Lookup(context.Background(), "41.58.0.1")
	assert.Error(t, err)
}

func TestNewIPAPIClientFromEnv(t *testing.T) {
	t.Setenv("GEOIP_API_URL", "http://geo.internal")
	t.Setenv("GEOIP_TIMEOUT", "750ms")

	c := NewIPAPIClientFromEnv()
	assert.Equal(t, "http://geo.internal", c.BaseURL)
	assert.Equal(t, 750*time.Millisecond, c.HTTPClient.Timeout)
}
