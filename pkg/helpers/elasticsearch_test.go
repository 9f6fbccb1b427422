package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func esStub(status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	}))
}

func TestNewESClient_Ping(t *testing.T) {
	srv := esStub(http.StatusOK)
	defer srv.Close()

	es, err := NewESClient(context.Background(), []string{srv.URL}, "", "")
	require.NoError(t, err)
	assert.NotNil(t, es)
}

func TestNewESClient_ClusterError(t *testing.T) {
	srv := esStub(http.StatusUnauthorized)
	defer srv.Close()

	_, err := NewESClient(context.Background(), []string{srv.URL}, "elastic", "wrong")
	assert.Error(t, err)
}
