package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/annocheck/internal/fetch"
	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

type stubContent struct {
	docs map[string]string
}

func (s *stubContent) Fetch(_ context.Context, reference string) (*fetch.Publication, error) {
	doc, ok := s.docs[reference]
	if !ok {
		return nil, fetch.ErrNoContent
	}
	return &fetch.Publication{Reference: reference, FullText: doc}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	content := &stubContent{docs: map[string]string{
		"PMID:1": "Cystic fibrosis patients showed recurrent respiratory infections.",
	}}
	svc, err := validate.NewService(validate.Config{}, content, nil, nil)
	require.NoError(t, err)

	srv, err := NewServer(":0", svc, nil)
	require.NoError(t, err)
	return srv
}

func TestNewServerValidation(t *testing.T) {
	svc, err := validate.NewService(validate.Config{}, &stubContent{}, nil, nil)
	require.NoError(t, err)

	_, err = NewServer("", svc, nil)
	assert.Error(t, err)

	_, err = NewServer(":0", nil, nil)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"supporting_text":"recurrent respiratory infections","reference":"PMID:1","disease_keywords":["cystic","fibrosis"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, 1.0, resp.SimilarityScore)
	assert.True(t, resp.DiseaseRelevant)
}

func TestValidateEndpointRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(`{"reference":"PMID:1"}`))
	req.Header.Set(echoContentType, echoJSON)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const (
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)
