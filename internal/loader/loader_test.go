package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/knowmap/internal/graph"
)

const sampleJson = `{
  "nodes": [
    {"name": "Data Quality", "group": 5, "wiki_link": "https://en.wikipedia.org/wiki/Data_quality"},
    {"name": "Accuracy", "group": 1, "wiki_link": "-"}
  ],
  "links": [
    {"source": "Data Quality", "target": "Accuracy", "value": 1, "property": "measured by"}
  ]
}`

const sampleYaml = `
nodes:
  - name: Data Quality
    group: 5
    wiki_link: "-"
  - name: Accuracy
    group: 1
links:
  - source: Data Quality
    target: Accuracy
    value: 2
    property: measured by
`

func TestFetchFileJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJson), 0o644))

	raw, err := New(http.DefaultClient).Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, raw.Nodes, 2)
	assert.Equal(t, graph.ManagementSystem, raw.Nodes[0].Group)
	assert.Equal(t, "-", raw.Nodes[1].WikiLink)
	assert.Equal(t, "measured by", raw.Links[0].Property)
}

func TestFetchFileYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYaml), 0o644))

	raw, err := New(http.DefaultClient).Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, raw.Links, 1)
	assert.Equal(t, 2.0, raw.Links[0].Value)
	assert.Equal(t, "Accuracy", raw.Links[0].Target)
}

func TestFetchHttp(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJson))
	}))
	defer srv.Close()

	raw, err := New(srv.Client()).Fetch(context.Background(), srv.URL+"/Data/Data.json")
	require.NoError(t, err)
	assert.Len(t, raw.Nodes, 2)
	assert.NotEmpty(t, userAgent)
}

func TestFetchHttpStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(srv.Client()).Fetch(context.Background(), srv.URL+"/missing.json")
	var dfe *DataFetchError
	require.True(t, errors.As(err, &dfe))
	assert.Contains(t, dfe.Error(), "404")
}

func TestFetchMissingFile(t *testing.T) {
	_, err := New(http.DefaultClient).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	var dfe *DataFetchError
	require.True(t, errors.As(err, &dfe))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFetchBadJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [`), 0o644))

	_, err := New(http.DefaultClient).Fetch(context.Background(), path)
	var dfe *DataFetchError
	assert.True(t, errors.As(err, &dfe))
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.Client()).Fetch(ctx, srv.URL+"/Data.json")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, formatOf("a/b.yaml"))
	assert.Equal(t, FormatYAML, formatOf("https://example.org/x.YML?v=1"))
	assert.Equal(t, FormatJSON, formatOf("https://example.org/x.json"))
	assert.Equal(t, FormatJSON, formatOf("Data/Data"))
}
