package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cfmtlint/internal/driver"
)

const statusWidth = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// stageWeight - доля файла, засчитываемая в прогресс, пока он в работе.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:  0.1,
	driver.StageLex:   0.3,
	driver.StageCheck: 0.5,
}

var stageLabel = map[driver.Stage]string{
	driver.StageLoad:  "loading",
	driver.StageLex:   "lexing",
	driver.StageCheck: "checking",
}

type fileRow struct {
	path     string
	status   driver.Status
	stage    driver.Stage
	calls    int
	findings int
}

func (r fileRow) final() bool {
	switch r.status {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	return false
}

func (r fileRow) label() string {
	if r.status != driver.StatusWorking {
		return string(r.status)
	}
	if l, ok := stageLabel[r.stage]; ok {
		return l
	}
	return "working"
}

func (r fileRow) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone, driver.StatusCached:
		if r.findings > 0 {
			return busyStyle
		}
		return okStyle
	case driver.StatusError:
		return failStyle
	case driver.StatusWorking:
		return busyStyle
	}
	return idleStyle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel shows one row per file with its status and, once checked,
// the number of calls and findings. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	total := 0
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %s %s", r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label())), truncate(r.path, nameWidth))
		if (r.final() && r.status != driver.StatusError) || r.findings > 0 {
			b.WriteString(summaryStyle.Render(fmt.Sprintf("  %s, %s", plural(r.calls, "call"), plural(r.findings, "finding"))))
		}
		b.WriteByte('\n')
		total += r.findings
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	if total > 0 {
		b.WriteString("  " + plural(total, "finding"))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	r.status, r.stage = ev.Status, ev.Stage
	if ev.Calls > 0 || ev.Findings > 0 {
		r.calls, r.findings = ev.Calls, ev.Findings
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, r := range m.rows {
		if r.final() {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch {
		case r.final():
			total++
		case r.status == driver.StatusWorking:
			total += stageWeight[r.stage]
		}
	}
	return total / float64(len(m.rows))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
