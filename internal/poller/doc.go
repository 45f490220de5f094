// Package poller broadcasts ArtPoll datagrams on an interval.
//
// Each iteration binds a UDP socket to <source>:6454 with SO_BROADCAST set
// and multicast loopback disabled, sends one 14 byte ArtPoll to the target
// (10.255.255.255:6454 unless configured), closes the socket and sleeps.
// With ReuseSocket the socket is opened once and held for the run.
//
//	p, err := poller.New(poller.DefaultConfig(source),
//	    poller.WithOnPoll(func(r poller.Report) { ... }))
//	sum, err := p.Run(ctx)
//
// Failures are *PollError values that match ErrSocketSetupFailed or
// ErrSendFailed. Under the Abort policy the first failure ends the run in
// StateFailed; under Continue the run keeps going and Run returns every
// failure combined with go.uber.org/multierr.
package poller
