package vis

type nodeData struct {
	ID          int     `json:"id"`
	Label       string  `json:"label"`
	Group       int     `json:"group"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	Opacity     float64 `json:"opacity"`
	BorderWidth float64 `json:"borderWidth"`
	Color       color   `json:"color"`
	Font        font    `json:"font"`
}

type color struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

type font struct {
	Bold string `json:"bold,omitempty"`
}

type edgeData struct {
	ID    int       `json:"id"`
	From  int       `json:"from"`
	To    int       `json:"to"`
	Label string    `json:"label,omitempty"`
	Width float64   `json:"width"`
	Color edgeColor `json:"color"`
	Font  *edgeFont `json:"font,omitempty"`
}

type edgeColor struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

type edgeFont struct {
	Color string `json:"color"`
}

type document struct {
	Nodes []nodeData `json:"nodes"`
	Edges []edgeData `json:"edges"`
}
