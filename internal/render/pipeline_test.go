package render

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `[
	{"team": "NAVI", "points": 1042.5, "heatmap": {"A Site": 3, "Mid": 1}},
	{"team": "FaZe", "points": 957.5, "heatmap": {"B Site": 2}}
]`

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ranking.json", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPipelineRunSuccess(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, validPayload)

	var buf bytes.Buffer
	p := NewPipeline(NewHTTPSource(srv.URL, 0), nil)
	require.NoError(t, p.Run(context.Background(), NewTableRenderer(&buf)))

	out := buf.String()
	assert.Contains(t, out, "<td>1</td><td>NAVI</td>")
	assert.Contains(t, out, "<td>2</td><td>FaZe</td>")
	assert.Contains(t, out, "A Site: 3, Mid: 1")
}

func TestPipelineRunFetchFailure(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, "boom")

	var buf bytes.Buffer
	p := NewPipeline(NewHTTPSource(srv.URL, 0), nil)
	err := p.Run(context.Background(), NewTableRenderer(&buf))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Empty(t, buf.String(), "failed pass must not touch the target")
}

func TestPipelineRunMalformedBody(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"not": "an array"`)

	var buf bytes.Buffer
	p := NewPipeline(NewHTTPSource(srv.URL, 0), nil)
	err := p.Run(context.Background(), NewTableRenderer(&buf))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, buf.String())
}

func TestPipelineRunEmptyArray(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `[]`)

	var buf bytes.Buffer
	p := NewPipeline(NewHTTPSource(srv.URL, 0), nil)
	require.NoError(t, p.Run(context.Background(), NewTableRenderer(&buf)))
	assert.Empty(t, buf.String(), "zero records, zero rows, no error")
}

func TestHTTPSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	source := NewHTTPSource(srv.URL, 50*time.Millisecond)
	_, err := source.Fetch(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTTPSourceContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	source := NewHTTPSource(srv.URL, 0)
	_, err := source.Fetch(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTTPSourceDirectJSONURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exports/cs2.json", r.URL.Path)
		w.Write([]byte(validPayload))
	}))
	t.Cleanup(srv.Close)

	source := NewHTTPSource(srv.URL+"/exports/cs2.json", 0)
	data, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, validPayload, string(data))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.json")
	require.NoError(t, os.WriteFile(path, []byte(validPayload), 0o644))

	data, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, validPayload, string(data))

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestPipelineRunPage(t *testing.T) {
	p := NewPipeline(BytesSource(validPayload), nil)

	var buf bytes.Buffer
	require.NoError(t, p.RunPage(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<!DOCTYPE html>")
	assert.Contains(t, buf.String(), "NAVI")
}
