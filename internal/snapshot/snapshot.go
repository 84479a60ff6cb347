// Package snapshot captures a PNG of a rendered graph page using headless Chrome.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/render"
	"github.com/psidex/knowmap/internal/selection"
)

type Options struct {
	Width   int
	Height  int
	Quality int
	// Settle is how long to wait after load for the chart to draw.
	Settle  time.Duration
	Timeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:   1100,
		Height:  630,
		Quality: 90,
		Settle:  time.Second,
		Timeout: 30 * time.Second,
	}
}

// Result is one captured page.
type Result struct {
	PNG             []byte
	Title           string
	DownloadedBytes int64
	// FailedRequests holds the error text of every request the page could not load.
	FailedRequests []string
}

type Capturer struct {
	opts   Options
	logger *slog.Logger
}

func NewCapturer(opts Options, logger *slog.Logger) *Capturer {
	return &Capturer{opts: opts, logger: lib.OrDiscard(logger)}
}

// Capture loads url in a fresh headless browser and screenshots the whole page.
func (c *Capturer) Capture(ctx context.Context, url string) (*Result, error) {
	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer timeoutCancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(c.opts.Width, c.opts.Height),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, allocOpts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	res := &Result{}
	var mu sync.Mutex

	listen := func(ctx context.Context) error {
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			mu.Lock()
			defer mu.Unlock()
			switch ev := ev.(type) {
			case *network.EventLoadingFinished:
				res.DownloadedBytes += int64(ev.EncodedDataLength)
			case *network.EventLoadingFailed:
				res.FailedRequests = append(res.FailedRequests, ev.ErrorText)
			}
		})
		return nil
	}

	var pageSource string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(listen),
		chromedp.EmulateViewport(int64(c.opts.Width), int64(c.opts.Height)),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.opts.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			pageSource, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
		chromedp.FullScreenshot(&res.PNG, c.opts.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}

	mu.Lock()
	defer mu.Unlock()

	res.Title = PageTitle(pageSource)
	for _, failed := range res.FailedRequests {
		c.logger.Warn("page request failed", "url", url, "err", failed)
	}
	c.logger.Info("captured page", "url", url, "bytes", len(res.PNG), "downloaded", res.DownloadedBytes)
	return res, nil
}

// CaptureGraph renders g with the ECharts renderer into a temporary file and
// captures that.
func (c *Capturer) CaptureGraph(ctx context.Context, g *graph.Graph, frame *selection.Frame) (*Result, error) {
	r, err := render.New("echarts", g, frame)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "knowmap-snapshot-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	name, err := render.RenderToFile(r, filepath.Join(dir, "graph"))
	if err != nil {
		return nil, fmt.Errorf("render snapshot page: %w", err)
	}
	return c.Capture(ctx, FileURL(name))
}

// FileURL turns an absolute path into a file:// URL.
func FileURL(path string) string {
	return "file://" + filepath.ToSlash(path)
}

// PageTitle returns the text of the first <title> in source, or "".
func PageTitle(source string) string {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				return strings.TrimSpace(n.FirstChild.Data)
			}
			return ""
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if t := walk(child); t != "" {
				return t
			}
		}
		return ""
	}
	return walk(doc)
}
