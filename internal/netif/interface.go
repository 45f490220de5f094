package netif

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

var (
	// ErrEnumerationFailed is returned when the OS interface list cannot be read.
	ErrEnumerationFailed = errors.New("interface enumeration failed")

	// ErrNoInterfaceFound is returned when no interface passes selection.
	ErrNoInterfaceFound = errors.New("no suitable broadcast interface found")
)

// NetworkInterface is a snapshot of one entry in the host interface list.
// An interface with several addresses appears once per address.
type NetworkInterface struct {
	// Name is the OS adapter name (e.g. "en0", "enp3s0")
	Name string

	// Address is the IPv4 address of this entry; invalid when the entry has
	// no address or belongs to another family
	Address netip.Addr

	// Netmask is informational only
	Netmask netip.Addr

	// Flags is the raw OS flag bitset
	Flags Flags
}

// HasAddress reports whether the entry carries an IPv4 address
func (ni NetworkInterface) HasAddress() bool {
	return ni.Address.IsValid()
}

// String returns a one-line description, e.g. "en0 192.168.1.5/255.255.255.0 <UP|BROADCAST>"
func (ni NetworkInterface) String() string {
	addr := "-"
	if ni.HasAddress() {
		addr = ni.Address.String()
		if ni.Netmask.IsValid() {
			addr += "/" + ni.Netmask.String()
		}
	}
	return fmt.Sprintf("%s %s <%s>", ni.Name, addr, ni.Flags)
}

// decodeAddr extracts an IPv4 address and mask from one entry of an
// interface's address list. Every other family, and nil, decodes to
// invalid (absent) values rather than an error.
func decodeAddr(a net.Addr) (addr, mask netip.Addr) {
	switch v := a.(type) {
	case *net.IPNet:
		if v == nil || len(v.Mask) != net.IPv4len {
			return netip.Addr{}, netip.Addr{}
		}
		ip4 := v.IP.To4()
		if ip4 == nil {
			return netip.Addr{}, netip.Addr{}
		}
		addr, _ = netip.AddrFromSlice(ip4)
		mask, _ = netip.AddrFromSlice(v.Mask)
	case *net.IPAddr:
		if v == nil {
			return netip.Addr{}, netip.Addr{}
		}
		if ip4 := v.IP.To4(); ip4 != nil {
			addr, _ = netip.AddrFromSlice(ip4)
		}
	}
	return addr, mask
}
