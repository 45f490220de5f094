package netif

import (
	"errors"
	"net/netip"
	"slices"
	"testing"
)

func iface(name, addr string, flags Flags) NetworkInterface {
	ni := NetworkInterface{Name: name, Flags: flags}
	if addr != "" {
		ni.Address = netip.MustParseAddr(addr)
	}
	return ni
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name string
		ni   NetworkInterface
		want bool
	}{
		{name: "all flags with address", ni: iface("en0", "192.168.1.5", broadcastFlags), want: true},
		{name: "no address", ni: iface("en0", "", broadcastFlags), want: false},
		{name: "missing UP", ni: iface("en0", "192.168.1.5", broadcastFlags&^FlagUp), want: false},
		{name: "missing BROADCAST", ni: iface("en0", "192.168.1.5", broadcastFlags&^FlagBroadcast), want: false},
		{name: "missing MULTICAST", ni: iface("en0", "192.168.1.5", broadcastFlags&^FlagMulticast), want: false},
		{name: "missing RUNNING", ni: iface("en0", "192.168.1.5", broadcastFlags&^FlagRunning), want: false},
		{name: "loopback", ni: iface("en0", "192.168.1.5", broadcastFlags|FlagLoopback), want: false},
		{name: "extra flags are fine", ni: iface("en0", "192.168.1.5", broadcastFlags|FlagPromisc|FlagAllMulti), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCandidate(tt.ni); got != tt.want {
				t.Errorf("IsCandidate(%v) = %v, want %v", tt.ni, got, tt.want)
			}
		})
	}
}

func TestSelect_Scenario(t *testing.T) {
	list := []NetworkInterface{
		iface("lo0", "127.0.0.1", FlagUp|FlagLoopback|FlagRunning|FlagMulticast),
		iface("en0", "192.168.1.5", FlagUp|FlagBroadcast|FlagMulticast|FlagRunning),
	}

	got, err := NewSelector().Select(slices.Values(list))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if want := netip.MustParseAddr("192.168.1.5"); got != want {
		t.Errorf("Select() = %v, want %v", got, want)
	}

	if IsCandidate(list[0]) {
		t.Error("lo0 should be rejected")
	}
}

func TestSelect_FirstMatchWins(t *testing.T) {
	list := []NetworkInterface{
		iface("wlan0", "10.0.0.7", broadcastFlags),
		iface("en1", "", broadcastFlags),
		iface("en1", "172.16.0.9", broadcastFlags),
		iface("en0", "192.168.1.5", broadcastFlags),
	}

	sel := NewSelector()
	first, err := sel.SelectInterface(slices.Values(list))
	if err != nil {
		t.Fatalf("SelectInterface() error = %v", err)
	}
	if first.Name != "en1" || first.Address != netip.MustParseAddr("172.16.0.9") {
		t.Errorf("SelectInterface() = %v, want en1 172.16.0.9", first)
	}

	// Same input, same answer
	for i := 0; i < 3; i++ {
		again, err := sel.Select(slices.Values(list))
		if err != nil || again != first.Address {
			t.Errorf("repeat Select() = %v, %v; want %v", again, err, first.Address)
		}
	}
}

func TestSelect_NoInterfaceFound(t *testing.T) {
	tests := []struct {
		name string
		list []NetworkInterface
	}{
		{name: "empty list", list: nil},
		{name: "address missing", list: []NetworkInterface{iface("en0", "", broadcastFlags)}},
		{name: "only loopback", list: []NetworkInterface{iface("lo", "127.0.0.1", broadcastFlags|FlagLoopback)}},
		{name: "candidate with wrong name", list: []NetworkInterface{iface("wlan0", "10.0.0.7", broadcastFlags)}},
		{name: "name matches but down", list: []NetworkInterface{iface("en0", "192.168.1.5", broadcastFlags&^FlagUp)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewSelector().Select(slices.Values(tt.list))
			if !errors.Is(err, ErrNoInterfaceFound) {
				t.Fatalf("Select() error = %v, want ErrNoInterfaceFound", err)
			}
			if addr.IsValid() {
				t.Errorf("Select() = %v, want invalid address", addr)
			}
		})
	}
}

func TestSelect_EmptyPrefixAcceptsAnyName(t *testing.T) {
	list := []NetworkInterface{iface("wlan0", "10.0.0.7", broadcastFlags)}

	got, err := (&Selector{}).Select(slices.Values(list))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != netip.MustParseAddr("10.0.0.7") {
		t.Errorf("Select() = %v", got)
	}
}

func TestCandidates(t *testing.T) {
	list := []NetworkInterface{
		iface("lo", "127.0.0.1", FlagUp|FlagLoopback|FlagRunning),
		iface("en0", "192.168.1.5", broadcastFlags),
		iface("en0", "", broadcastFlags),
		iface("wlan0", "10.0.0.7", broadcastFlags),
	}

	got := slices.Collect(Candidates(slices.Values(list)))
	if len(got) != 2 {
		t.Fatalf("Candidates() = %v, want 2 entries", got)
	}
	for _, ni := range got {
		if !IsCandidate(ni) {
			t.Errorf("Candidates() yielded non-candidate %v", ni)
		}
	}

	// Early break stops the upstream sequence
	for range Candidates(slices.Values(list)) {
		break
	}
}

func TestSelect_ReleasesIteratorOnMatch(t *testing.T) {
	src := newHostSource()
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	addr, err := NewSelector().Select(it.All())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if addr != netip.MustParseAddr("192.168.1.5") {
		t.Errorf("Select() = %v, want 192.168.1.5", addr)
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestFindBroadcastSource(t *testing.T) {
	prev := openSource
	t.Cleanup(func() { openSource = prev })

	t.Run("match", func(t *testing.T) {
		src := newHostSource()
		openSource = opener(src)

		addr, err := FindBroadcastSource("wl")
		if err != nil {
			t.Fatalf("FindBroadcastSource() error = %v", err)
		}
		if addr != netip.MustParseAddr("10.0.0.7") {
			t.Errorf("FindBroadcastSource() = %v, want 10.0.0.7", addr)
		}
		if src.closeCalls != 1 {
			t.Errorf("Close called %d times, want 1", src.closeCalls)
		}
	})

	t.Run("no match", func(t *testing.T) {
		src := newHostSource()
		openSource = opener(src)

		_, err := FindBroadcastSource("eth")
		if !errors.Is(err, ErrNoInterfaceFound) {
			t.Errorf("error = %v, want ErrNoInterfaceFound", err)
		}
		if src.closeCalls != 1 {
			t.Errorf("Close called %d times, want 1", src.closeCalls)
		}
	})

	t.Run("enumeration fails", func(t *testing.T) {
		openSource = opener(&fakeSource{listErr: errors.New("boom")})

		_, err := FindBroadcastSource(DefaultNamePrefix)
		if !errors.Is(err, ErrEnumerationFailed) {
			t.Errorf("error = %v, want ErrEnumerationFailed", err)
		}
	})
}
