package poller

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"syscall"
)

// Sentinels matched by errors.Is on a *PollError
var (
	ErrSocketSetupFailed = errors.New("socket setup failed")
	ErrSendFailed        = errors.New("send failed")
)

// ErrorType represents the stage of a poll iteration that failed
type ErrorType int

const (
	// ErrTypeSocketSetup covers bind and socket option failures
	ErrTypeSocketSetup ErrorType = iota
	// ErrTypeSend covers a failed or short datagram write
	ErrTypeSend
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeSocketSetup:
		return "Socket Setup Error"
	case ErrTypeSend:
		return "Send Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Cause narrows an error down to the OS condition behind it
type Cause int

const (
	CauseGeneral Cause = iota
	CauseAddressInUse
	CausePermissionDenied
	CauseAddressNotAvailable
	CauseNetworkUnreachable
)

func (c Cause) String() string {
	switch c {
	case CauseAddressInUse:
		return "address in use"
	case CausePermissionDenied:
		return "permission denied"
	case CauseAddressNotAvailable:
		return "address not available"
	case CauseNetworkUnreachable:
		return "network unreachable"
	default:
		return "general"
	}
}

// PollError is returned for a failed poll iteration
type PollError struct {
	Type      ErrorType      // Stage that failed
	Cause     Cause          // OS condition, when recognised
	Op        string         // "bind" or "send"
	Iteration int            // 1-based iteration number
	Source    netip.AddrPort // Local address the socket was bound to
	Target    netip.AddrPort // Broadcast destination
	Err       error          // Underlying error
}

// Error implements the error interface
func (e *PollError) Error() string {
	addr := e.Source
	if e.Type == ErrTypeSend {
		addr = e.Target
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s (caused by: %v)", e.Type, e.Op, addr, e.Err)
	}
	return fmt.Sprintf("%s: %s %s", e.Type, e.Op, addr)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PollError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's stage
func (e *PollError) Is(target error) bool {
	switch target {
	case ErrSocketSetupFailed:
		return e.Type == ErrTypeSocketSetup
	case ErrSendFailed:
		return e.Type == ErrTypeSend
	}
	return false
}

func newPollError(typ ErrorType, op string, iteration int, source, target netip.AddrPort, err error) *PollError {
	return &PollError{
		Type:      typ,
		Cause:     classify(err),
		Op:        op,
		Iteration: iteration,
		Source:    source,
		Target:    target,
		Err:       err,
	}
}

// classify maps the errno buried in a net.OpError/os.SyscallError chain
func classify(err error) Cause {
	switch {
	case err == nil:
		return CauseGeneral
	case errors.Is(err, syscall.EADDRINUSE):
		return CauseAddressInUse
	case errors.Is(err, syscall.EACCES), errors.Is(err, os.ErrPermission):
		return CausePermissionDenied
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return CauseAddressNotAvailable
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return CauseNetworkUnreachable
	default:
		return CauseGeneral
	}
}

// ShortMessage returns a concise, user-friendly message for err
func ShortMessage(err error) string {
	var pe *PollError
	if !errors.As(err, &pe) {
		return err.Error()
	}

	switch pe.Cause {
	case CauseAddressInUse:
		return fmt.Sprintf("Port %d already in use on %s", pe.Source.Port(), pe.Source.Addr())
	case CausePermissionDenied:
		return "Permission denied opening broadcast socket"
	case CauseAddressNotAvailable:
		return fmt.Sprintf("Address %s not available on this host", pe.Source.Addr())
	case CauseNetworkUnreachable:
		return fmt.Sprintf("No route to %s", pe.Target.Addr())
	}
	if pe.Type == ErrTypeSend {
		return fmt.Sprintf("Failed to send ArtPoll to %s", pe.Target)
	}
	return fmt.Sprintf("Failed to open broadcast socket on %s", pe.Source)
}

// Hint returns troubleshooting advice for err
func Hint(err error) string {
	var pe *PollError
	if !errors.As(err, &pe) {
		return "An unexpected error occurred. Run with --log-level debug for details."
	}

	switch pe.Cause {
	case CauseAddressInUse:
		return strings.Join([]string{
			"Another Art-Net application is bound to UDP 6454.",
			"Troubleshooting:",
			"  • Close lighting consoles or visualisers running on this host",
			"  • Check with: ss -ulpn 'sport = :6454'",
		}, "\n")
	case CausePermissionDenied:
		return strings.Join([]string{
			"The OS refused the broadcast socket.",
			"Troubleshooting:",
			"  • Check local firewall rules for UDP 6454",
			"  • Some sandboxes block SO_BROADCAST entirely",
		}, "\n")
	case CauseAddressNotAvailable:
		return strings.Join([]string{
			"The source address is not assigned to any local interface.",
			"Troubleshooting:",
			"  • Run 'artpoll interfaces' to list usable addresses",
			"  • Drop --source to let the interface be selected automatically",
		}, "\n")
	case CauseNetworkUnreachable:
		return strings.Join([]string{
			"The broadcast target is not reachable from the source interface.",
			"Troubleshooting:",
			"  • Art-Net expects the node network on 2.x.x.x or 10.x.x.x",
			"  • Try --target primary, or a directed broadcast for your subnet",
		}, "\n")
	}

	if pe.Type == ErrTypeSend {
		return "The datagram could not be sent. Check the cable and link state of the interface."
	}
	return "The broadcast socket could not be set up. Run with --log-level debug for details."
}
