package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "knowmap", PageTitle(`<html><head><title> knowmap </title></head><body></body></html>`))
	assert.Equal(t, "", PageTitle(`<html><body><p>no title</p></body></html>`))
	assert.Equal(t, "", PageTitle(``))
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///tmp/x/graph.html", FileURL("/tmp/x/graph.html"))
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1100, o.Width)
	assert.Equal(t, 630, o.Height)
	assert.Positive(t, o.Timeout)
}
