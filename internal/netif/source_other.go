//go:build !linux

package netif

import "net"

// osSource has no native handle off Linux; flags come from net.Flags.
type osSource struct{}

func openOSSource() (source, error) {
	return osSource{}, nil
}

func (osSource) Interfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

func (osSource) Addrs(ifi *net.Interface) ([]net.Addr, error) {
	return ifi.Addrs()
}

func (osSource) Flags(ifi *net.Interface) Flags {
	return fromNetFlags(ifi.Flags)
}

func (osSource) Close() error {
	return nil
}
