package poller

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/muurk/artpoll/internal/artnet"
	"github.com/muurk/artpoll/internal/logging"
)

// DefaultInterval is the pause between polls
const DefaultInterval = 2500 * time.Millisecond

// ErrAlreadyStarted is returned when Run is called a second time
var ErrAlreadyStarted = errors.New("poller already started")

// Config holds the poller parameters
type Config struct {
	Source      netip.Addr      // Local IPv4 address to bind, port is always artnet.Port
	Target      netip.AddrPort  // Broadcast destination, defaults to artnet.DefaultBroadcast
	Interval    time.Duration   // Pause between polls, defaults to DefaultInterval
	Count       int             // Number of polls, 0 polls until cancelled
	Priority    artnet.Priority // Diagnostics priority, defaults to DpLow
	OnError     ErrorPolicy     // Abort or Continue on a failed iteration
	ReuseSocket bool            // Keep one socket for the whole run instead of rebinding each poll
}

// DefaultConfig returns a config polling the secondary broadcast address
// forever from source.
func DefaultConfig(source netip.Addr) Config {
	return Config{
		Source:   source,
		Target:   artnet.DefaultBroadcast,
		Interval: DefaultInterval,
		Priority: artnet.DpLow,
	}
}

func (c *Config) normalize() error {
	if !c.Source.IsValid() || !c.Source.Unmap().Is4() {
		return fmt.Errorf("source %v is not an IPv4 address", c.Source)
	}
	c.Source = c.Source.Unmap()

	if !c.Target.IsValid() {
		c.Target = artnet.DefaultBroadcast
	}
	if !c.Target.Addr().Unmap().Is4() {
		return fmt.Errorf("target %v is not an IPv4 address", c.Target)
	}
	c.Target = netip.AddrPortFrom(c.Target.Addr().Unmap(), c.Target.Port())
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Priority == 0 {
		c.Priority = artnet.DpLow
	}
	if !c.Priority.Valid() {
		return fmt.Errorf("invalid priority %v", c.Priority)
	}
	return nil
}

// Report describes one poll iteration
type Report struct {
	Iteration int
	Source    netip.AddrPort
	Target    netip.AddrPort
	Bytes     int
	Time      time.Time
	Err       error
}

// Summary totals a finished run
type Summary struct {
	Iterations int
	Sent       int
	Failed     int
	Started    time.Time
	Elapsed    time.Duration
}

// Option configures a Poller
type Option func(*Poller)

// WithBinder replaces the socket binder
func WithBinder(b Binder) Option {
	return func(p *Poller) { p.bind = b }
}

// WithSleep replaces the interval wait. fn must return ctx.Err() when ctx
// is cancelled.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Poller) { p.sleep = fn }
}

// WithOnPoll registers a hook called synchronously after every iteration
func WithOnPoll(fn func(Report)) Option {
	return func(p *Poller) { p.onPoll = fn }
}

// Poller periodically broadcasts ArtPoll datagrams
type Poller struct {
	cfg    Config
	bind   Binder
	sleep  func(ctx context.Context, d time.Duration) error
	onPoll func(Report)
	state  atomic.Int32
}

// New validates cfg, fills in defaults and creates a Poller
func New(cfg Config, opts ...Option) (*Poller, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	p := &Poller{
		cfg:   cfg,
		bind:  Bind,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the effective configuration
func (p *Poller) Config() Config {
	return p.cfg
}

// State returns the current run state. Safe to call from any goroutine.
func (p *Poller) State() State {
	return State(p.state.Load())
}

func (p *Poller) setState(s State) {
	p.state.Store(int32(s))
}

// Run polls until Count iterations are done, ctx is cancelled, or an
// iteration fails under the Abort policy. Under Continue every failure is
// returned, combined. A cancelled run ends in StateDone and its error
// matches ctx.Err().
func (p *Poller) Run(ctx context.Context) (Summary, error) {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateBinding)) {
		return Summary{}, ErrAlreadyStarted
	}

	source := netip.AddrPortFrom(p.cfg.Source, artnet.Port)
	sum := Summary{Started: time.Now()}

	logging.Info("Starting ArtPoll broadcast",
		zap.String("source", source.String()),
		zap.String("target", p.cfg.Target.String()),
		zap.Duration("interval", p.cfg.Interval),
		zap.Int("count", p.cfg.Count),
		zap.String("priority", p.cfg.Priority.String()),
		zap.String("on_error", p.cfg.OnError.String()),
		zap.Bool("reuse_socket", p.cfg.ReuseSocket),
	)

	var (
		conn PacketConn
		errs error
	)
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	finish := func(state State, err error) (Summary, error) {
		p.setState(state)
		sum.Elapsed = time.Since(sum.Started)
		logging.Info("ArtPoll broadcast finished",
			zap.String("state", state.String()),
			zap.Int("iterations", sum.Iterations),
			zap.Int("sent", sum.Sent),
			zap.Int("failed", sum.Failed),
		)
		return sum, err
	}

	for i := 1; p.cfg.Count == 0 || i <= p.cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return finish(StateDone, multierr.Append(errs, err))
		}

		rep := p.pollOnce(ctx, i, source, &conn)
		sum.Iterations++
		if rep.Err != nil {
			sum.Failed++
		} else {
			sum.Sent++
		}
		if p.onPoll != nil {
			p.onPoll(rep)
		}

		if rep.Err != nil {
			if p.cfg.OnError == Abort {
				return finish(StateFailed, rep.Err)
			}
			errs = multierr.Append(errs, rep.Err)
		}

		if p.cfg.Count != 0 && i == p.cfg.Count {
			break
		}

		p.setState(StateSleeping)
		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			return finish(StateDone, multierr.Append(errs, err))
		}
	}

	return finish(StateDone, errs)
}

// pollOnce binds (unless a reused socket is open), sends one datagram and
// releases the socket. conn carries the socket between iterations when
// ReuseSocket is set.
func (p *Poller) pollOnce(ctx context.Context, iteration int, source netip.AddrPort, conn *PacketConn) Report {
	rep := Report{
		Iteration: iteration,
		Source:    source,
		Target:    p.cfg.Target,
		Time:      time.Now(),
	}

	c := *conn
	if c == nil {
		p.setState(StateBinding)
		var err error
		c, err = p.bind(ctx, source)
		if err != nil {
			pe := newPollError(ErrTypeSocketSetup, "bind", iteration, source, p.cfg.Target, err)
			logging.Error("Failed to open broadcast socket",
				zap.Int("iteration", iteration),
				zap.String("source", source.String()),
				zap.String("cause", pe.Cause.String()),
				zap.Error(err),
			)
			rep.Err = pe
			return rep
		}
		if p.cfg.ReuseSocket {
			*conn = c
		}
	}

	p.setState(StateBroadcasting)
	data := artnet.BuildPoll(p.cfg.Priority)
	n, err := c.WriteToUDPAddrPort(data[:], p.cfg.Target)
	if err == nil && n != len(data) {
		err = fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}

	if !p.cfg.ReuseSocket || err != nil {
		if cerr := c.Close(); cerr != nil {
			logging.Debug("Error closing broadcast socket", zap.Error(cerr))
		}
		*conn = nil
	}

	if err != nil {
		pe := newPollError(ErrTypeSend, "send", iteration, source, p.cfg.Target, err)
		logging.Error("Failed to send ArtPoll",
			zap.Int("iteration", iteration),
			zap.String("target", p.cfg.Target.String()),
			zap.String("cause", pe.Cause.String()),
			zap.Error(err),
		)
		rep.Err = pe
		return rep
	}

	rep.Bytes = n
	logging.LogPollSent(iteration, source, p.cfg.Target, data[:])
	return rep
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
