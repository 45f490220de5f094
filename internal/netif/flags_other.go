//go:build !linux

package netif

// Interface flags using the BSD <net/if.h> bit positions. On Windows there
// is no native bitset, so these are synthesized from net.Flags.
const (
	FlagUp           Flags = 0x1
	FlagBroadcast    Flags = 0x2
	FlagDebug        Flags = 0x4
	FlagLoopback     Flags = 0x8
	FlagPointToPoint Flags = 0x10
	FlagNoTrailers   Flags = 0x20
	FlagRunning      Flags = 0x40
	FlagNoARP        Flags = 0x80
	FlagPromisc      Flags = 0x100
	FlagAllMulti     Flags = 0x200
	FlagMulticast    Flags = 0x8000
)

var flagNames = []namedFlag{
	{FlagUp, "UP"},
	{FlagBroadcast, "BROADCAST"},
	{FlagDebug, "DEBUG"},
	{FlagLoopback, "LOOPBACK"},
	{FlagPointToPoint, "POINTOPOINT"},
	{FlagNoTrailers, "NOTRAILERS"},
	{FlagRunning, "RUNNING"},
	{FlagNoARP, "NOARP"},
	{FlagPromisc, "PROMISC"},
	{FlagAllMulti, "ALLMULTI"},
	{FlagMulticast, "MULTICAST"},
}
