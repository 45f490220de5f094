// Package netif enumerates host network interfaces and picks one to source
// Art-Net broadcast discovery from.
//
// Enumerate returns an Iterator over a snapshot of the OS interface list.
// The iterator holds an OS handle (on Linux, a socket used to read the raw
// flag bitset with SIOCGIFFLAGS) and releases it exactly once, when the
// list is exhausted, when a range loop over All stops early, or on Close.
//
//	it, err := netif.Enumerate()
//	if err != nil {
//	    return err // wraps netif.ErrEnumerationFailed
//	}
//	addr, err := netif.NewSelector().Select(it.All())
//
// Selection keeps interfaces with an IPv4 address that are UP, RUNNING,
// BROADCAST and MULTICAST but not LOOPBACK, then returns the first whose
// name starts with the selector's prefix ("en" by default). When nothing
// matches, ErrNoInterfaceFound is returned; this is normal on hosts without
// a wired adapter.
package netif
