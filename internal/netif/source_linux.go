//go:build linux

package netif

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/muurk/artpoll/internal/logging"
)

// osSource reads flags with SIOCGIFFLAGS on a datagram socket held open
// for the life of the iterator.
type osSource struct {
	fd int
}

func openOSSource() (source, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open ioctl socket: %w", err)
	}
	return &osSource{fd: fd}, nil
}

func (s *osSource) Interfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

func (s *osSource) Addrs(ifi *net.Interface) ([]net.Addr, error) {
	return ifi.Addrs()
}

func (s *osSource) Flags(ifi *net.Interface) Flags {
	ifr, err := unix.NewIfreq(ifi.Name)
	if err == nil {
		err = unix.IoctlIfreq(s.fd, unix.SIOCGIFFLAGS, ifr)
	}
	if err != nil {
		logging.Debug("SIOCGIFFLAGS failed, using portable flags",
			zap.String("interface", ifi.Name),
			zap.Error(err),
		)
		return fromNetFlags(ifi.Flags)
	}
	// ifr_flags is a short; LOWER_UP, DORMANT and ECHO are not reported here
	return Flags(ifr.Uint16())
}

func (s *osSource) Close() error {
	return unix.Close(s.fd)
}
