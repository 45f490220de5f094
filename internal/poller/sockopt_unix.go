//go:build unix

package poller

import (
	"golang.org/x/sys/unix"
)

func setBroadcastSockopt(fd uintptr) error {
	return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
}
