package output

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DefaultLabel is used for lines logged outside of any stage
const DefaultLabel = "relticket"

// LabelColors is the palette stage labels are drawn from
var LabelColors = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
}

// labelStyler pads stage labels to LabelWidth and colours them when the
// destination supports it.
type labelStyler struct {
	renderer *lipgloss.Renderer
}

func newLabelStyler(w io.Writer, noColor bool) *labelStyler {
	renderer := lipgloss.NewRenderer(w)
	if noColor || os.Getenv("NO_COLOR") != "" {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &labelStyler{renderer: renderer}
}

// render pads before styling so escape sequences don't count towards the width
func (l *labelStyler) render(stage string) string {
	if stage == "" {
		stage = DefaultLabel
	}
	padded := fmt.Sprintf("%-*s", LabelWidth, stage)
	if l.renderer.ColorProfile() == termenv.Ascii {
		return padded
	}

	color := LabelColors[paletteIndex(stage)]
	hexColor := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))
	return l.renderer.NewStyle().Foreground(hexColor).Render(padded)
}

func paletteIndex(stage string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(stage))
	return int(h.Sum32() % uint32(len(LabelColors)))
}
