package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonarchSynonyms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/api/entity/MONDO:0009061", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"name": "Cystic Fibrosis",
			"synonyms": [
				{"val": "Mucoviscidosis"},
				{"val": "  CF  "},
				{"val": "mucoviscidosis"},
				{"val": ""}
			]
		}`))
	}))
	defer srv.Close()

	c := NewMonarchClient(srv.URL, 5*time.Second, nil)
	syns := c.Synonyms(context.Background(), "MONDO:0009061")

	assert.Equal(t, []string{"cf", "cystic fibrosis", "mucoviscidosis"}, syns)
}

func TestMonarchSynonymsFailOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewMonarchClient(srv.URL, 5*time.Second, nil)
	assert.Nil(t, c.Synonyms(context.Background(), "MONDO:0000001"))
	assert.Nil(t, c.Synonyms(context.Background(), ""))
}

func TestMonarchSynonymsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewMonarchClient(srv.URL, 5*time.Second, nil)
	assert.Nil(t, c.Synonyms(context.Background(), "MONDO:0000002"))
}
