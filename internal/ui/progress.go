package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/artpoll/internal/artnet"
	"github.com/muurk/artpoll/internal/poller"
)

// Progress tracks a poll run. With a known total it renders a bar,
// otherwise only the counters.
type Progress struct {
	Total  int // Polls planned, 0 when polling until interrupted
	Sent   int
	Failed int
	Width  int
	bar    progress.Model
}

// NewProgress creates a tracker for total polls
func NewProgress(total int) *Progress {
	p := &Progress{Total: total}
	p.SetWidth(GetTerminalWidth())
	return p
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 30 // Leave room for percentage and counters
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// Record counts a finished iteration
func (p *Progress) Record(rep poller.Report) {
	if rep.Err != nil {
		p.Failed++
	} else {
		p.Sent++
	}
}

// Done returns the number of finished iterations
func (p *Progress) Done() int {
	return p.Sent + p.Failed
}

// Percent returns completion in 0..1, or 0 for an open-ended run
func (p *Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Done()) / float64(p.Total)
	if pct > 1 {
		pct = 1
	}
	return pct
}

// Render returns the progress bar line
func (p *Progress) Render() string {
	counts := fmt.Sprintf("%d sent", p.Sent)
	if p.Failed > 0 {
		counts += ", " + PollFailedStyle.Render(fmt.Sprintf("%d failed", p.Failed))
	}

	if p.Total <= 0 {
		return lipgloss.NewStyle().
			PaddingLeft(2).
			Render(fmt.Sprintf("[%d]  %s", p.Done(), counts))
	}

	pct := p.Percent()
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d]  %s", p.bar.ViewAs(pct), pct*100, p.Done(), p.Total, counts))
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}

// RenderPollLine renders a status line for one iteration, e.g.
//
//	[  3] ✓ 192.168.1.5:6454 → 10.255.255.255:6454  14 bytes  12:00:05
func RenderPollLine(rep poller.Report, total int) string {
	var b strings.Builder

	if total > 0 {
		w := len(fmt.Sprint(total))
		fmt.Fprintf(&b, "  [%*d/%d] ", w, rep.Iteration, total)
	} else {
		fmt.Fprintf(&b, "  [%3d] ", rep.Iteration)
	}

	if rep.Err != nil {
		b.WriteString(PollFailedStyle.Render(FailureMarker))
		b.WriteString(" ")
		b.WriteString(ErrorMessageStyle.Render(poller.ShortMessage(rep.Err)))
		return b.String()
	}

	b.WriteString(PollSentStyle.Render(SuccessMarker))
	b.WriteString(" ")
	b.WriteString(PollDetailStyle.Render(fmt.Sprintf("%s → %s", rep.Source, rep.Target)))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("%d bytes", rep.Bytes))
	if name := artnet.TargetName(rep.Target); name == "primary" || name == "secondary" {
		b.WriteString("  ")
		b.WriteString(NoteStyle.Render("(" + name + ")"))
	}
	if !rep.Time.IsZero() {
		b.WriteString("  ")
		b.WriteString(PollDetailStyle.Render(rep.Time.Format(time.TimeOnly)))
	}
	return b.String()
}
