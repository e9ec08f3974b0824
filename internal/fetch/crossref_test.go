package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossRefWorkTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works/10.1000%2Fdemo.1", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"message":{"title":["Sweat chloride measurement"]}}`))
	}))
	defer srv.Close()

	c := NewCrossRefClient(srv.URL, 5*time.Second)
	title, err := c.WorkTitle(context.Background(), "10.1000/demo.1")
	require.NoError(t, err)
	assert.Equal(t, "Sweat chloride measurement", title)
}

func TestCrossRefWorkTitleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewCrossRefClient(srv.URL, 5*time.Second)
	_, err := c.WorkTitle(context.Background(), "10.1000/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCrossRefWorkTitleEmptyTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"title":[]}}`))
	}))
	defer srv.Close()

	c := NewCrossRefClient(srv.URL, 5*time.Second)
	_, err := c.WorkTitle(context.Background(), "10.1000/untitled")
	assert.Error(t, err)
}
