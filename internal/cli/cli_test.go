package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = `{
  "nodes": [
    {"name": "Gate", "group": 1, "wiki_link": "-"},
    {"name": "Plate", "group": 2, "wiki_link": "-"},
    {"name": "Door", "group": 2, "wiki_link": "-"},
    {"name": "Island", "group": 4, "wiki_link": "-"}
  ],
  "links": [
    {"source": "Gate", "target": "Plate", "value": 1, "property": "supports"},
    {"source": "Door", "target": "Gate", "value": 1, "property": "opens"}
  ]
}`

type fixture struct {
	dir    string
	config string
	data   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
		data:   filepath.Join(dir, "Data.json"),
	}
	require.NoError(t, os.WriteFile(f.data, []byte(testData), 0o644))

	_, err := f.run("config", "init")
	require.NoError(t, err)
	return f
}

func (f fixture) run(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", f.config, "--data", f.data, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = f.run("config", "init", "--force")
	assert.NoError(t, err)

	out, err := f.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, f.data, "--data overrides data.source")
}

func TestSearchCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("search", "ATE")
	require.NoError(t, err)
	assert.Contains(t, out, "Gate")
	assert.Contains(t, out, "Plate")
	assert.NotContains(t, out, "Island")

	out, err = f.run("search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestInspectCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run("inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "4 nodes, 2 edges")
	assert.Contains(t, out, "2 connected components, 1 isolated nodes")
	assert.Contains(t, out, "largest component: 3 nodes")
}

func TestRenderCommand(t *testing.T) {
	f := newFixture(t)
	base := filepath.Join(f.dir, "out")

	out, err := f.run("render", "--format", "graphology", "-o", base, "--select", "Gate", "--edges")
	require.NoError(t, err)
	assert.Contains(t, out, base+".json")
	_, err = os.Stat(base + ".json")
	assert.NoError(t, err)

	_, err = f.run("render", "--format", "dot", "-o", base)
	assert.ErrorContains(t, err, "unknown graph format")

	_, err = f.run("render", "-o", base, "--select", "Nowhere")
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	f := newFixture(t)
	_, err := f.run("--log-level", "loud", "inspect")
	assert.ErrorContains(t, err, "log.level")
}
