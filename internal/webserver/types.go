package webserver

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
	Edges   int    `json:"edges,omitempty"`
	Version string `json:"version"`
}
