package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/artpoll/internal/poller"
)

// liveHistory is how many status lines the live view keeps on screen
const liveHistory = 10

// PollMsg carries a finished iteration into the live view
type PollMsg poller.Report

// RunDoneMsg is sent when the poll loop returns
type RunDoneMsg struct {
	Summary poller.Summary
	Err     error
}

type liveKeyMap struct {
	Quit key.Binding
}

func (k liveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k liveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// LiveModel is a Bubble Tea model showing a running broadcast
type LiveModel struct {
	Header   *Header
	Progress *Progress
	Recent   []poller.Report
	Total    int

	Stopping bool // User asked to quit
	Done     bool // Poll loop returned
	Summary  poller.Summary
	Err      error

	Width   int
	Spinner spinner.Model
	Help    help.Model
	Keys    liveKeyMap
}

// NewLiveModel creates the live view for a run of total polls (0 for
// open-ended).
func NewLiveModel(title, command string, total int, params ...Field) LiveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	width := GetTerminalWidth()

	return LiveModel{
		Header:   NewHeader(title, command, params...).SetWidth(width),
		Progress: NewProgress(total).SetWidth(width),
		Total:    total,
		Width:    width,
		Spinner:  s,
		Help:     help.New(),
		Keys: liveKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "stop"),
			),
		},
	}
}

// Init implements tea.Model
func (m LiveModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update implements tea.Model
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			m.Stopping = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = clampWidth(min(msg.Width, MaxContentWidth))
		m.Header.SetWidth(m.Width)
		m.Progress.SetWidth(m.Width)

	case PollMsg:
		rep := poller.Report(msg)
		m.Progress.Record(rep)
		m.Recent = append(m.Recent, rep)
		if len(m.Recent) > liveHistory {
			m.Recent = m.Recent[len(m.Recent)-liveHistory:]
		}

	case RunDoneMsg:
		m.Done = true
		m.Summary = msg.Summary
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(m.Header.Render())
	b.WriteString("\n\n")

	switch {
	case m.Done:
		b.WriteString("  " + SuccessTitleStyle.Render(SuccessMarker+" Broadcast finished"))
	case m.Stopping:
		b.WriteString("  " + WarningTitleStyle.Render("Stopping..."))
	default:
		b.WriteString("  " + m.Spinner.View() + " Broadcasting ArtPoll")
	}
	b.WriteString("\n\n")
	b.WriteString(m.Progress.Render())
	b.WriteString("\n\n")

	for _, rep := range m.Recent {
		b.WriteString(RenderPollLine(rep, m.Total))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.Help.View(m.Keys))
	b.WriteString("\n")
	return b.String()
}

// RunLive runs the poll loop in its own goroutine behind a LiveModel view.
// run must pass onPoll to the poller. Quitting the view cancels the context
// given to run; the loop's own result is returned.
func RunLive(ctx context.Context, model LiveModel, run func(ctx context.Context, onPoll func(poller.Report)) (poller.Summary, error), opts ...tea.ProgramOption) (poller.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(model, opts...)

	type result struct {
		sum poller.Summary
		err error
	}
	done := make(chan result, 1)

	go func() {
		sum, err := run(ctx, func(rep poller.Report) {
			prog.Send(PollMsg(rep))
		})
		prog.Send(RunDoneMsg{Summary: sum, Err: err})
		done <- result{sum, err}
	}()

	_, progErr := prog.Run()
	cancel()
	res := <-done

	if progErr != nil {
		return res.sum, progErr
	}
	return res.sum, res.err
}
