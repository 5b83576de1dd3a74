package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used by the printer, bound to one renderer so colour detection
// follows the output writer rather than stdout.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Border    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			Padding(0, 1),
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// newRenderer returns a renderer for w. Plain output, NO_COLOR and
// non-terminal writers all render without escape sequences.
func newRenderer(w io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if plain || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
