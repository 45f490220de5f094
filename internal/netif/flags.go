package netif

import (
	"fmt"
	"net"
	"strings"
)

// Flags is the raw interface flag bitset as reported by the OS.
type Flags uint32

// Has reports whether every bit in flag is set
func (f Flags) Has(flag Flags) bool {
	return flag != 0 && f&flag == flag
}

// String lists the names of the set flags, e.g. "UP|BROADCAST|RUNNING".
// Bits without a name are appended as hex.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}

	var names []string
	rest := f
	for _, nf := range flagNames {
		if nf.flag != 0 && f&nf.flag == nf.flag {
			names = append(names, nf.name)
			rest &^= nf.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

type namedFlag struct {
	flag Flags
	name string
}

// fromNetFlags maps the portable net.Flags subset onto the native bit
// positions. Used where the OS bitset cannot be read directly.
func fromNetFlags(nf net.Flags) Flags {
	var f Flags
	if nf&net.FlagUp != 0 {
		f |= FlagUp
	}
	if nf&net.FlagBroadcast != 0 {
		f |= FlagBroadcast
	}
	if nf&net.FlagLoopback != 0 {
		f |= FlagLoopback
	}
	if nf&net.FlagPointToPoint != 0 {
		f |= FlagPointToPoint
	}
	if nf&net.FlagMulticast != 0 {
		f |= FlagMulticast
	}
	if nf&net.FlagRunning != 0 {
		f |= FlagRunning
	}
	return f
}
