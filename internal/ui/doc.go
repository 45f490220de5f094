// Package ui provides terminal output for the artpoll CLI.
//
// Output uses Lipgloss for styling and follows a "print and move on"
// pattern: a header box describing the run, one status line per poll, then
// a success or failure box. The --tui mode swaps the status lines for a
// Bubble Tea view (LiveModel) with a spinner, progress bar and the last few
// polls.
//
// # Components
//
//   - Header: command banner showing the title, command line and parameters
//   - Progress: sent/failed counters, with a bar when the poll count is known
//   - Result: success, warning and failure boxes with troubleshooting tips
//   - PacketView: an encoded ArtPoll, field by field, plus a hex dump
//   - RenderInterfaceTable: enumerated interfaces with candidate markers
//
// PollRunner ties these together for the poll command:
//
//	runner := ui.NewPollRunner(ui.PollRunnerConfig{
//	    Title:   "ArtPoll Discovery",
//	    Command: "artpoll poll",
//	    Params:  []ui.Field{{Key: "Source", Value: "192.168.1.5:6454"}},
//	    Total:   cfg.Count,
//	})
//	p, _ := poller.New(cfg, poller.WithOnPoll(runner.OnPoll))
//	sum, err := runner.Run(ctx, p.Run)
//
// # Logging Integration
//
// zap logging is silent unless ARTPOLL_LOG_LEVEL or --log-level is set, so
// the styled output is not interleaved with log lines by default. Logs go
// to stderr.
package ui
