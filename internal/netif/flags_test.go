package netif

import (
	"net"
	"strings"
	"testing"
)

func TestFlagsHas(t *testing.T) {
	f := FlagUp | FlagBroadcast | FlagRunning

	if !f.Has(FlagUp) || !f.Has(FlagBroadcast) || !f.Has(FlagRunning) {
		t.Errorf("%v should have UP, BROADCAST and RUNNING", f)
	}
	if f.Has(FlagLoopback) {
		t.Errorf("%v should not have LOOPBACK", f)
	}
	if !f.Has(FlagUp | FlagRunning) {
		t.Error("Has with several bits should require all of them")
	}
	if f.Has(FlagUp | FlagMulticast) {
		t.Error("Has should be false when any requested bit is missing")
	}
	if f.Has(0) {
		t.Error("Has(0) should be false")
	}
}

func TestFlagsString(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  string
	}{
		{name: "zero", flags: 0, want: "0"},
		{name: "single", flags: FlagUp, want: "UP"},
		{name: "ordered by bit", flags: FlagRunning | FlagUp | FlagBroadcast, want: "UP|BROADCAST|RUNNING"},
		{name: "loopback", flags: FlagUp | FlagLoopback, want: "UP|LOOPBACK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flags.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlagsString_UnnamedBits(t *testing.T) {
	got := (FlagUp | Flags(1<<30)).String()
	if !strings.HasPrefix(got, "UP|") || !strings.HasSuffix(got, "0x40000000") {
		t.Errorf("String() = %q, want UP|0x40000000", got)
	}
}

func TestFromNetFlags(t *testing.T) {
	tests := []struct {
		name string
		in   net.Flags
		want Flags
	}{
		{name: "none", in: 0, want: 0},
		{name: "ethernet", in: net.FlagUp | net.FlagBroadcast | net.FlagMulticast | net.FlagRunning, want: broadcastFlags},
		{name: "loopback", in: net.FlagUp | net.FlagLoopback | net.FlagRunning, want: FlagUp | FlagLoopback | FlagRunning},
		{name: "point to point", in: net.FlagUp | net.FlagPointToPoint, want: FlagUp | FlagPointToPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromNetFlags(tt.in); got != tt.want {
				t.Errorf("fromNetFlags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
