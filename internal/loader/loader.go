// Package loader fetches the graph data file from disk or over HTTP and decodes it.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/corpix/uarand"
	"gopkg.in/yaml.v3"

	"github.com/psidex/knowmap/internal/graph"
)

// maxBodyBytes bounds how much of a remote data file is read.
const maxBodyBytes = 64 << 20

// DataFetchError is returned for any failure to read or decode the data file.
type DataFetchError struct {
	Source string
	Err    error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("fetch graph data from %s: %v", e.Source, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// Loader reads data files. The zero value is not usable, see New.
type Loader struct {
	client *http.Client
}

func New(hc *http.Client) *Loader {
	return &Loader{client: hc}
}

// Fetch reads source, which is either an http(s) URL or a file path. There are no
// retries.
func (l *Loader) Fetch(ctx context.Context, source string) (graph.RawGraph, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(source) {
		data, err = l.get(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return graph.RawGraph{}, &DataFetchError{Source: source, Err: err}
	}

	raw, err := Decode(data, formatOf(source))
	if err != nil {
		return graph.RawGraph{}, &DataFetchError{Source: source, Err: err}
	}
	return raw, nil
}

func (l *Loader) get(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", uarand.GetRandom())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got non-OK status code: %v", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// Format is the encoding of a data file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// formatOf guesses the format from the extension; anything but .yaml/.yml is JSON.
func formatOf(source string) Format {
	p := source
	if u, err := url.Parse(source); err == nil && isRemote(source) {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Decode parses a data file. Unknown JSON fields are ignored.
func Decode(data []byte, format Format) (graph.RawGraph, error) {
	var raw graph.RawGraph
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return graph.RawGraph{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return graph.RawGraph{}, fmt.Errorf("decode json: %w", err)
		}
	}
	return raw, nil
}
