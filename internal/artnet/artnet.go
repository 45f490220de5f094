package artnet

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// ID is the 8-byte signature that starts every Art-Net packet ("Art-Net\0").
var ID = [8]byte{'A', 'r', 't', '-', 'N', 'e', 't', 0x00}

const (
	// ProtocolVersion is the Art-Net protocol revision, sent big-endian.
	ProtocolVersion uint16 = 14

	// Port is the UDP port used for all Art-Net traffic (0x1936).
	Port uint16 = 0x1936
)

var (
	// PrimaryBroadcast is the broadcast endpoint for the 2.x.x.x Art-Net range.
	PrimaryBroadcast = netip.AddrPortFrom(netip.AddrFrom4([4]byte{2, 255, 255, 255}), Port)

	// SecondaryBroadcast is the broadcast endpoint for the 10.x.x.x Art-Net range.
	SecondaryBroadcast = netip.AddrPortFrom(netip.AddrFrom4([4]byte{10, 255, 255, 255}), Port)

	// DefaultBroadcast is where polls go unless configured otherwise.
	DefaultBroadcast = SecondaryBroadcast
)

// ParseTarget resolves a poll destination. It accepts "primary",
// "secondary", an IPv4 address (port defaults to Port) or an ip:port pair.
func ParseTarget(s string) (netip.AddrPort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "secondary":
		return SecondaryBroadcast, nil
	case "primary":
		return PrimaryBroadcast, nil
	}

	if ap, err := netip.ParseAddrPort(s); err == nil {
		if !ap.Addr().Is4() {
			return netip.AddrPort{}, fmt.Errorf("target %q is not an IPv4 address", s)
		}
		if ap.Port() == 0 {
			return netip.AddrPort{}, fmt.Errorf("target %q has port 0", s)
		}
		return ap, nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid target %q (use primary, secondary, <ip> or <ip>:<port>)", s)
	}
	if !addr.Is4() {
		return netip.AddrPort{}, fmt.Errorf("target %q is not an IPv4 address", s)
	}
	return netip.AddrPortFrom(addr, Port), nil
}

// TargetName returns "primary" or "secondary" for the well-known endpoints
// and the address itself for anything else.
func TargetName(ap netip.AddrPort) string {
	switch ap {
	case PrimaryBroadcast:
		return "primary"
	case SecondaryBroadcast:
		return "secondary"
	}
	if ap.Port() == Port {
		return ap.Addr().String()
	}
	return ap.Addr().String() + ":" + strconv.Itoa(int(ap.Port()))
}
