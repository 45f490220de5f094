package netif

import (
	"fmt"
	"iter"
	"net"
	"slices"

	"go.uber.org/zap"

	"github.com/muurk/artpoll/internal/logging"
)

// source is the OS-owned view of the interface list. An Iterator keeps it
// open while records are decoded and closes it exactly once.
type source interface {
	Interfaces() ([]net.Interface, error)
	Addrs(ifi *net.Interface) ([]net.Addr, error)
	Flags(ifi *net.Interface) Flags
	Close() error
}

// openSource is replaced in tests
var openSource = openOSSource

// Iterator walks a snapshot of the host interface list. It is single-pass:
// once exhausted or closed it yields nothing more. Records are decoded on
// demand as Next is called.
type Iterator struct {
	src     source
	ifaces  []net.Interface
	next    int
	pending []NetworkInterface
	closed  bool
}

// Enumerate snapshots the host interface list. The returned Iterator holds
// an OS handle until it is exhausted or closed; callers that stop early
// must call Close (ranging over All does this automatically).
//
// Errors from the OS wrap ErrEnumerationFailed.
func Enumerate() (*Iterator, error) {
	return enumerate(openSource)
}

func enumerate(open func() (source, error)) (*Iterator, error) {
	src, err := open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerationFailed, err)
	}

	ifaces, err := src.Interfaces()
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %w", ErrEnumerationFailed, err)
	}

	logging.Debug("Interface list acquired", zap.Int("interfaces", len(ifaces)))

	return &Iterator{src: src, ifaces: ifaces}, nil
}

// Next returns the next record. The second result is false once the list
// is exhausted, at which point the OS handle has been released.
func (it *Iterator) Next() (NetworkInterface, bool) {
	for len(it.pending) == 0 {
		if it.closed || it.next >= len(it.ifaces) {
			_ = it.Close()
			return NetworkInterface{}, false
		}
		ifi := &it.ifaces[it.next]
		it.next++
		it.pending = it.decode(ifi)
	}

	ni := it.pending[0]
	it.pending = it.pending[1:]
	return ni, true
}

// decode expands one OS interface into a record per address
func (it *Iterator) decode(ifi *net.Interface) []NetworkInterface {
	flags := it.src.Flags(ifi)

	addrs, err := it.src.Addrs(ifi)
	if err != nil {
		logging.Debug("Address lookup failed, treating interface as unaddressed",
			zap.String("interface", ifi.Name),
			zap.Error(err),
		)
		addrs = nil
	}

	if len(addrs) == 0 {
		ni := NetworkInterface{Name: ifi.Name, Flags: flags}
		logging.LogInterface(ni.Name, ni.Address, ni.Flags, false)
		return []NetworkInterface{ni}
	}

	records := make([]NetworkInterface, 0, len(addrs))
	for _, a := range addrs {
		addr, mask := decodeAddr(a)
		ni := NetworkInterface{
			Name:    ifi.Name,
			Address: addr,
			Netmask: mask,
			Flags:   flags,
		}
		logging.LogInterface(ni.Name, ni.Address, ni.Flags, IsCandidate(ni))
		records = append(records, ni)
	}
	return records
}

// Close releases the OS handle. It is safe to call more than once; only
// the first call has any effect.
func (it *Iterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	it.pending = nil

	if err := it.src.Close(); err != nil {
		logging.Warn("Failed to release interface list", zap.Error(err))
		return fmt.Errorf("failed to release interface list: %w", err)
	}
	return nil
}

// All returns the remaining records as a sequence. The iterator is closed
// when the range loop finishes or breaks.
func (it *Iterator) All() iter.Seq[NetworkInterface] {
	return func(yield func(NetworkInterface) bool) {
		defer it.Close()
		for {
			ni, ok := it.Next()
			if !ok || !yield(ni) {
				return
			}
		}
	}
}

// Interfaces enumerates and collects every record
func Interfaces() ([]NetworkInterface, error) {
	it, err := Enumerate()
	if err != nil {
		return nil, err
	}
	return slices.Collect(it.All()), nil
}
