// Package theme resolves the color roles used by selection frames to concrete colors
// for static renders. The browser viewer resolves them against its own CSS theme.
package theme

import "github.com/psidex/knowmap/internal/selection"

const (
	Accent    = "#570DF8"
	Neutral   = "rgba(26, 26, 26, 0.2)"
	LinkColor = "rgba(26, 26, 26, 0.3)"
	TextColor = "#1a1a1a"

	labelSolid = "#1a1a1a"
	labelFaint = "rgba(26, 26, 26, 0.7)"
)

func StrokeColor(s selection.Stroke) string {
	if s == selection.StrokeAccent {
		return Accent
	}
	return Neutral
}

func LabelColor(emphasized bool) string {
	if emphasized {
		return labelSolid
	}
	return labelFaint
}
