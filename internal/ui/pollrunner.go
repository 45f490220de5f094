package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/muurk/artpoll/internal/poller"
)

// PollRunnerConfig holds configuration for a console poll run
type PollRunnerConfig struct {
	Title   string    // Command title (e.g., "ArtPoll Discovery")
	Command string    // Full command (e.g., "artpoll poll --count 5")
	Params  []Field   // Parameters to display in header
	Total   int       // Planned polls, 0 for open-ended
	Output  io.Writer // Output writer (default: os.Stdout)
}

// PollRunner prints the header, one status line per poll, and a result box
// for a poller run.
type PollRunner struct {
	config   PollRunnerConfig
	header   *Header
	progress *Progress
	output   io.Writer
	width    int
}

// NewPollRunner creates a new runner
func NewPollRunner(config PollRunnerConfig) *PollRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	return &PollRunner{
		config:   config,
		header:   NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		progress: NewProgress(config.Total).SetWidth(width),
		output:   config.Output,
		width:    width,
	}
}

// SetWidth overrides the detected terminal width
func (r *PollRunner) SetWidth(width int) *PollRunner {
	r.width = width
	r.header.SetWidth(width)
	r.progress.SetWidth(width)
	return r
}

// OnPoll prints the status line for one iteration. Pass it to
// poller.WithOnPoll.
func (r *PollRunner) OnPoll(rep poller.Report) {
	r.progress.Record(rep)
	_, _ = fmt.Fprintln(r.output, RenderPollLine(rep, r.config.Total))
}

// Run prints the header, runs p and prints the outcome. Cancellation
// (Ctrl-C) is reported as a normal stop and not returned as an error.
func (r *PollRunner) Run(ctx context.Context, run func(ctx context.Context) (poller.Summary, error)) (poller.Summary, error) {
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	sum, err := run(ctx)
	_, _ = fmt.Fprintln(r.output)

	return sum, r.Finish(sum, err)
}

// Finish prints the result box for a run that has returned and gives back
// err without context cancellation errors.
func (r *PollRunner) Finish(sum poller.Summary, err error) error {
	failures := withoutCancellation(err)
	if failures != nil {
		r.printFailure(sum, failures)
		return failures
	}
	r.printSuccess(sum, err != nil)
	return nil
}

func (r *PollRunner) printSuccess(sum poller.Summary, interrupted bool) {
	title := "Broadcast complete"
	if interrupted {
		title = "Broadcast stopped"
	}
	result := NewSuccessResult(title,
		Field{"Polls sent", fmt.Sprint(sum.Sent)},
		Field{"Duration", sum.Elapsed.Round(time.Millisecond).String()},
	)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}

func (r *PollRunner) printFailure(sum poller.Summary, err error) {
	errs := multierr.Errors(err)
	summary, tips := SplitHint(poller.Hint(errs[0]))
	if len(tips) == 0 && summary != "" {
		tips = []string{summary}
	}

	result := NewFailureResult("Broadcast failed", errors.New(poller.ShortMessage(errs[0])), tips)
	result.AddDetail("Polls sent", fmt.Sprint(sum.Sent))
	result.AddDetail("Failures", fmt.Sprint(sum.Failed))
	if len(errs) > 1 {
		result.AddDetail("Errors", fmt.Sprintf("%d (first shown)", len(errs)))
	}
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
}

// withoutCancellation drops context errors from a combined run error
func withoutCancellation(err error) error {
	var kept error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, context.Canceled) || errors.Is(e, context.DeadlineExceeded) {
			continue
		}
		kept = multierr.Append(kept, e)
	}
	return kept
}
