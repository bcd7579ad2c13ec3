package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, published map[string]bool, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		name := r.URL.Path[1:]
		if published[name] {
			w.Header().Set("Content-Type", "application/vnd.npm.install-v1+json")
			_, _ = w.Write([]byte(`{"name":"` + name + `"}`))
			return
		}
		http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExists(t *testing.T) {
	server := newTestServer(t, map[string]bool{"@types/lodash": true}, nil)
	c := New(WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))

	found, err := c.Exists(context.Background(), "@types/lodash")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = c.Exists(context.Background(), "@types/zod")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExists_NonOKStatusIsAbsent(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError, http.StatusMovedPermanently} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
		found, err := c.Exists(context.Background(), "@types/x")
		server.Close()

		require.NoError(t, err, "status %d", status)
		assert.False(t, found, "status %d", status)
	}
}

func TestExists_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(WithBaseURL(url))
	_, err := c.Exists(context.Background(), "@types/lodash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@types/lodash")
}

func TestExists_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithTimeout(50*time.Millisecond))
	_, err := c.Exists(context.Background(), "@types/slow")
	require.Error(t, err)
}

func TestExists_Memoized(t *testing.T) {
	var hits atomic.Int32
	server := newTestServer(t, map[string]bool{"@types/react": true}, &hits)
	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	for i := 0; i < 3; i++ {
		found, err := c.Exists(context.Background(), "@types/react")
		require.NoError(t, err)
		assert.True(t, found)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestExists_FailuresNotMemoized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(WithBaseURL(url))
	_, err := c.Exists(context.Background(), "@types/a")
	require.Error(t, err)
	_, err = c.Exists(context.Background(), "@types/a")
	require.Error(t, err, "a transport failure must not be cached as an answer")
}

func TestExists_Headers(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
	}))
	t.Cleanup(server.Close)

	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithToken("s3cret"))
	_, err := c.Exists(context.Background(), "@types/node")
	require.NoError(t, err)

	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Contains(t, gotAccept, "application/vnd.npm.install-v1+json")
}

func TestPackageURL(t *testing.T) {
	tests := []struct {
		base string
		name string
		want string
	}{
		{"https://registry.npmjs.org/", "@types/lodash", "https://registry.npmjs.org/@types/lodash"},
		{"https://registry.npmjs.org", "@types/lodash", "https://registry.npmjs.org/@types/lodash"},
		{"http://localhost:4873/npm/", "@types/@babel/core", "http://localhost:4873/npm/@types/@babel/core"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c := New(WithBaseURL(tt.base))
			assert.Equal(t, tt.want, c.PackageURL(tt.name))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("NPM_TOKEN", "")
	c := New(WithBaseURL(""), WithTimeout(0))
	assert.Equal(t, "https://registry.npmjs.org/", c.BaseURL())
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.Empty(t, c.token)
}
