package netif

import (
	"fmt"
	"iter"
	"net/netip"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/artpoll/internal/logging"
)

// DefaultNamePrefix matches wired Ethernet adapters ("en0" on macOS,
// "enp3s0"/"eno1" with systemd predictable names).
const DefaultNamePrefix = "en"

// IsCandidate reports whether an interface can source broadcast discovery:
// it has an IPv4 address, is UP, RUNNING, BROADCAST and MULTICAST capable,
// and is not a loopback.
func IsCandidate(ni NetworkInterface) bool {
	return ni.HasAddress() &&
		ni.Flags.Has(FlagBroadcast) &&
		ni.Flags.Has(FlagUp) &&
		ni.Flags.Has(FlagMulticast) &&
		ni.Flags.Has(FlagRunning) &&
		!ni.Flags.Has(FlagLoopback)
}

// Candidates filters seq down to interfaces passing IsCandidate
func Candidates(seq iter.Seq[NetworkInterface]) iter.Seq[NetworkInterface] {
	return func(yield func(NetworkInterface) bool) {
		for ni := range seq {
			if IsCandidate(ni) && !yield(ni) {
				return
			}
		}
	}
}

// Selector picks the broadcast source interface
type Selector struct {
	// NamePrefix restricts selection to adapters whose name starts with it.
	// Empty accepts any name.
	NamePrefix string
}

// NewSelector creates a selector using DefaultNamePrefix
func NewSelector() *Selector {
	return &Selector{NamePrefix: DefaultNamePrefix}
}

// SelectInterface returns the first candidate in enumeration order whose
// name matches NamePrefix.
func (s *Selector) SelectInterface(seq iter.Seq[NetworkInterface]) (NetworkInterface, error) {
	for ni := range Candidates(seq) {
		if !strings.HasPrefix(ni.Name, s.NamePrefix) {
			continue
		}
		logging.Info("Broadcast interface selected",
			zap.String("interface", ni.Name),
			zap.String("address", ni.Address.String()),
		)
		return ni, nil
	}
	return NetworkInterface{}, fmt.Errorf("%w (name prefix %q)", ErrNoInterfaceFound, s.NamePrefix)
}

// Select returns the IPv4 address of the selected interface
func (s *Selector) Select(seq iter.Seq[NetworkInterface]) (netip.Addr, error) {
	ni, err := s.SelectInterface(seq)
	if err != nil {
		return netip.Addr{}, err
	}
	return ni.Address, nil
}

// FindBroadcastSource enumerates the host interfaces and selects a source
// address using namePrefix. The interface list is always released.
func FindBroadcastSource(namePrefix string) (netip.Addr, error) {
	it, err := Enumerate()
	if err != nil {
		return netip.Addr{}, err
	}
	defer it.Close()

	sel := &Selector{NamePrefix: namePrefix}
	return sel.Select(it.All())
}
