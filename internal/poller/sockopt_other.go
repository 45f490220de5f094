//go:build !unix && !windows

package poller

import "errors"

func setBroadcastSockopt(fd uintptr) error {
	return errors.ErrUnsupported
}
