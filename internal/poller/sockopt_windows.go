//go:build windows

package poller

import (
	"golang.org/x/sys/windows"
)

func setBroadcastSockopt(fd uintptr) error {
	return windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_BROADCAST, 1)
}
