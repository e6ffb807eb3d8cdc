package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

// tuiProgressEvery bounds the iterations between view updates.
const tuiProgressEvery = 20_000

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barDeepStyle   = lipgloss.NewStyle().Foreground(colorGray)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	tuiLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

type progressMsg srg.Progress

type searchDoneMsg struct {
	res *srg.Result
	err error
}

// SearchModel is the bubbletea model for the live search view. It shows
// the current and deepest row count and the search counters, and cancels
// the search on q or ctrl+c.
type SearchModel struct {
	Spec     srg.Spec
	Progress srg.Progress
	Result   *srg.Result
	Err      error
	Stopping bool
	Width    int

	cancel context.CancelFunc
}

// NewSearchModel creates a search view. cancel stops the search.
func NewSearchModel(spec srg.Spec, cancel context.CancelFunc) SearchModel {
	return SearchModel{
		Spec:     spec,
		Progress: srg.Progress{N: spec.N},
		Width:    40,
		cancel:   cancel,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Keep running until the search returns its aborted result.
			if !m.Stopping && m.cancel != nil {
				m.cancel()
			}
			m.Stopping = true
		}
	case tea.WindowSizeMsg:
		m.Width = max(10, min(60, msg.Width-30))
	case progressMsg:
		m.Progress = srg.Progress(msg)
	case searchDoneMsg:
		m.Result, m.Err = msg.res, msg.err
		if msg.res != nil {
			m.Progress = srg.Progress{
				Rows:    len(msg.res.Rows),
				N:       m.Spec.N,
				Stats:   msg.res.Stats,
				Elapsed: msg.res.Elapsed,
			}
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder
	p := m.Progress

	b.WriteString(StyleTitle.Render("Searching " + m.Spec.String()))
	b.WriteString("\n\n")
	b.WriteString(m.bar())
	fmt.Fprintf(&b, "  %d/%d\n\n", p.Rows, p.N)

	line := func(key, value string) {
		b.WriteString(tuiLabelStyle.Render(key))
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}
	line("deepest", fmt.Sprintf("%d rows", p.Stats.MaxRows))
	line("iterations", fmt.Sprintf("%d", p.Stats.Iterations))
	line("rejected", fmt.Sprintf("%d", p.Stats.Rejected+p.Stats.Infeasible))
	line("backtracks", fmt.Sprintf("%d", p.Stats.Backtracks))
	line("elapsed", p.Elapsed.Round(100*time.Millisecond).String())

	b.WriteString("\n")
	switch {
	case m.Result != nil && m.Err == nil:
		b.WriteString(StyleSuccess.Render(iconSuccess + " complete"))
	case m.Stopping:
		b.WriteString(StyleWarning.Render("stopping..."))
	default:
		b.WriteString(StyleDim.Render("q stop"))
	}
	b.WriteString("\n")
	return b.String()
}

// bar draws the current depth, with the part up to the deepest depth
// reached so far in a lighter shade.
func (m SearchModel) bar() string {
	n := max(m.Progress.N, 1)
	cur := m.Progress.Rows * m.Width / n
	deep := max(cur, m.Progress.Stats.MaxRows*m.Width/n)
	return barFilledStyle.Render(strings.Repeat("█", cur)) +
		barDeepStyle.Render(strings.Repeat("▒", deep-cur)) +
		barEmptyStyle.Render(strings.Repeat("░", m.Width-deep))
}

// runSearchTUI runs the search behind the live view on stderr and returns
// what the search returned.
func runSearchTUI(ctx context.Context, spec srg.Spec, seeds srg.RowSet, so srg.Options) (*srg.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSearchModel(spec, cancel), tea.WithOutput(os.Stderr))

	if so.ProgressEvery <= 0 || so.ProgressEvery > tuiProgressEvery {
		so.ProgressEvery = tuiProgressEvery
	}
	so.Progress = func(pr srg.Progress) { p.Send(progressMsg(pr)) }

	go func() {
		res, err := srg.Solve(ctx, spec, seeds, so)
		p.Send(searchDoneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	m := final.(SearchModel)
	return m.Result, m.Err
}
