//go:build linux

package netif

import "golang.org/x/sys/unix"

// Interface flags, as defined in <net/if.h>
const (
	FlagUp           Flags = unix.IFF_UP
	FlagBroadcast    Flags = unix.IFF_BROADCAST
	FlagDebug        Flags = unix.IFF_DEBUG
	FlagLoopback     Flags = unix.IFF_LOOPBACK
	FlagPointToPoint Flags = unix.IFF_POINTOPOINT
	FlagNoTrailers   Flags = unix.IFF_NOTRAILERS
	FlagRunning      Flags = unix.IFF_RUNNING
	FlagNoARP        Flags = unix.IFF_NOARP
	FlagPromisc      Flags = unix.IFF_PROMISC
	FlagAllMulti     Flags = unix.IFF_ALLMULTI
	FlagMaster       Flags = unix.IFF_MASTER
	FlagSlave        Flags = unix.IFF_SLAVE
	FlagMulticast    Flags = unix.IFF_MULTICAST
	FlagPortSel      Flags = unix.IFF_PORTSEL
	FlagAutoMedia    Flags = unix.IFF_AUTOMEDIA
	FlagDynamic      Flags = unix.IFF_DYNAMIC
	FlagLowerUp      Flags = unix.IFF_LOWER_UP
	FlagDormant      Flags = unix.IFF_DORMANT
	FlagEcho         Flags = unix.IFF_ECHO
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
	{FlagMaster, "MASTER"},
	{FlagSlave, "SLAVE"},
	{FlagMulticast, "MULTICAST"},
	{FlagPortSel, "PORTSEL"},
	{FlagAutoMedia, "AUTOMEDIA"},
	{FlagDynamic, "DYNAMIC"},
	{FlagLowerUp, "LOWER_UP"},
	{FlagDormant, "DORMANT"},
	{FlagEcho, "ECHO"},
}
