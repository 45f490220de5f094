package poller

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"syscall"

	"golang.org/x/net/ipv4"
)

// PacketConn is the part of a UDP socket the poller writes through
type PacketConn interface {
	WriteToUDPAddrPort(b []byte, addr netip.AddrPort) (int, error)
	LocalAddr() net.Addr
	Close() error
}

// Binder opens a broadcast socket bound to source
type Binder func(ctx context.Context, source netip.AddrPort) (PacketConn, error)

// Bind opens a UDP socket on source with SO_BROADCAST enabled and IPv4
// multicast loopback disabled.
func Bind(ctx context.Context, source netip.AddrPort) (PacketConn, error) {
	lc := net.ListenConfig{Control: broadcastControl}
	pc, err := lc.ListenPacket(ctx, "udp4", source.String())
	if err != nil {
		return nil, err
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("unexpected packet conn type %T", pc)
	}

	if err := ipv4.NewPacketConn(conn).SetMulticastLoopback(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("disable multicast loopback: %w", err)
	}
	return conn, nil
}

func broadcastControl(network, address string, c syscall.RawConn) error {
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = setBroadcastSockopt(fd)
	}); err != nil {
		return err
	}
	if serr != nil {
		return fmt.Errorf("set SO_BROADCAST: %w", serr)
	}
	return nil
}
