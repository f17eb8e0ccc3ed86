package harness

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Report is the outcome of one full run.
type Report struct {
	RunID    string
	Endpoint string
	Session  string
	Results  []Result
}

func (r Report) Counts() map[Outcome]int {
	counts := map[Outcome]int{Pass: 0, Skip: 0, Fail: 0}
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}

// Failed reports whether any check failed. Skips do not fail a run.
func (r Report) Failed() bool {
	return r.Counts()[Fail] > 0
}

// Reporter prints one human-readable line per event. Colors are dropped
// automatically when w is not a terminal.
type Reporter struct {
	w         io.Writer
	passStyle lipgloss.Style
	skipStyle lipgloss.Style
	failStyle lipgloss.Style
	noteStyle lipgloss.Style
}

func NewReporter(w io.Writer) *Reporter {
	renderer := lipgloss.NewRenderer(w)

	return &Reporter{
		w:         w,
		passStyle: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		skipStyle: renderer.NewStyle().Foreground(lipgloss.Color("11")),
		failStyle: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		noteStyle: renderer.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

func (r *Reporter) Pass(msg string) { r.line(r.passStyle, msg) }
func (r *Reporter) Skip(msg string) { r.line(r.skipStyle, msg) }
func (r *Reporter) Fail(msg string) { r.line(r.failStyle, msg) }
func (r *Reporter) Note(msg string) { r.line(r.noteStyle, msg) }

func (r *Reporter) Summary(report Report) {
	counts := report.Counts()
	msg := fmt.Sprintf("🧪 run %s against %s (session %q): %d passed, %d skipped, %d failed",
		report.RunID, report.Endpoint, report.Session, counts[Pass], counts[Skip], counts[Fail])

	if report.Failed() {
		r.Fail(msg)
		return
	}
	r.Pass(msg)
}

func (r *Reporter) line(style lipgloss.Style, msg string) {
	fmt.Fprintln(r.w, style.Render(msg))
}
