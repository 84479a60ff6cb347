package session

import (
	"github.com/psidex/knowmap/internal/search"
)

// Inbound command types.
const (
	typeNodeClick     = "node_click"
	typeCategory      = "category"
	typeSearch        = "search"
	typeSearchSelect  = "search_select"
	typeSearchDismiss = "search_dismiss"
	typeEdges         = "edges"
	typeLabels        = "labels"
)

// Outbound message types.
const (
	TypeHello   = "hello"
	TypeFrame   = "frame"
	TypeResults = "results"
	TypeError   = "error"
)

type inbound struct {
	Type  string `json:"type"`
	Node  string `json:"node"`
	Value string `json:"value"`
	Query string `json:"query"`
	On    bool   `json:"on"`
}

// Message is everything the server sends. Data depends on Type.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type hello struct {
	Session string `json:"session"`
	Version string `json:"version"`
}

// Result is a search match with its name pre-rendered as HTML.
type Result struct {
	search.Match
	HTML string `json:"html"`
}

type errorData struct {
	Message string `json:"message"`
}
