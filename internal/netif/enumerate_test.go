package netif

import (
	"errors"
	"net"
	"net/netip"
	"slices"
	"testing"
)

// fakeSource is an in-memory interface list that counts Close calls
type fakeSource struct {
	ifaces     []net.Interface
	addrs      map[string][]net.Addr
	addrErr    map[string]error
	flags      map[string]Flags
	listErr    error
	closeCalls int
}

func (f *fakeSource) Interfaces() ([]net.Interface, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ifaces, nil
}

func (f *fakeSource) Addrs(ifi *net.Interface) ([]net.Addr, error) {
	if err := f.addrErr[ifi.Name]; err != nil {
		return nil, err
	}
	return f.addrs[ifi.Name], nil
}

func (f *fakeSource) Flags(ifi *net.Interface) Flags {
	return f.flags[ifi.Name]
}

func (f *fakeSource) Close() error {
	f.closeCalls++
	return nil
}

func opener(src *fakeSource) func() (source, error) {
	return func() (source, error) { return src, nil }
}

func ipNet(cidr string) *net.IPNet {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

const broadcastFlags = FlagUp | FlagBroadcast | FlagMulticast | FlagRunning

func newHostSource() *fakeSource {
	return &fakeSource{
		ifaces: []net.Interface{
			{Index: 1, Name: "lo"},
			{Index: 2, Name: "enp3s0"},
			{Index: 3, Name: "wlan0"},
			{Index: 4, Name: "docker0"},
		},
		addrs: map[string][]net.Addr{
			"lo":     {ipNet("127.0.0.1/8"), ipNet("::1/128")},
			"enp3s0": {ipNet("192.168.1.5/24"), ipNet("fe80::1/64")},
			"wlan0":  {ipNet("10.0.0.7/16")},
		},
		flags: map[string]Flags{
			"lo":      FlagUp | FlagLoopback | FlagRunning,
			"enp3s0":  broadcastFlags,
			"wlan0":   broadcastFlags,
			"docker0": FlagUp | FlagBroadcast | FlagMulticast,
		},
	}
}

func TestEnumerate_RecordPerAddress(t *testing.T) {
	src := newHostSource()
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	got := slices.Collect(it.All())

	type rec struct {
		name string
		addr string
		mask string
	}
	want := []rec{
		{"lo", "127.0.0.1", "255.0.0.0"},
		{"lo", "invalid IP", "invalid IP"},
		{"enp3s0", "192.168.1.5", "255.255.255.0"},
		{"enp3s0", "invalid IP", "invalid IP"},
		{"wlan0", "10.0.0.7", "255.255.0.0"},
		{"docker0", "invalid IP", "invalid IP"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Name != w.name || g.Address.String() != w.addr || g.Netmask.String() != w.mask {
			t.Errorf("record %d = {%s %s %s}, want %v", i, g.Name, g.Address, g.Netmask, w)
		}
		if g.Flags != src.flags[g.Name] {
			t.Errorf("record %d flags = %v, want %v", i, g.Flags, src.flags[g.Name])
		}
	}

	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestEnumerate_AddressErrorYieldsUnaddressedRecord(t *testing.T) {
	src := &fakeSource{
		ifaces:  []net.Interface{{Name: "en0"}},
		addrErr: map[string]error{"en0": errors.New("route socket busy")},
		flags:   map[string]Flags{"en0": broadcastFlags},
	}
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	got := slices.Collect(it.All())
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].HasAddress() {
		t.Errorf("expected no address, got %s", got[0].Address)
	}
}

func TestEnumerate_ClosesOnEarlyBreak(t *testing.T) {
	src := newHostSource()
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	for ni := range it.All() {
		if ni.Name == "lo" {
			break
		}
	}

	if src.closeCalls != 1 {
		t.Errorf("Close called %d times after break, want 1", src.closeCalls)
	}

	// The sequence is single-pass; nothing more comes out after close
	if _, ok := it.Next(); ok {
		t.Error("Next() after close returned a record")
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestEnumerate_ExplicitCloseIsIdempotent(t *testing.T) {
	src := newHostSource()
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	if _, ok := it.Next(); !ok {
		t.Fatal("expected a first record")
	}

	for i := 0; i < 3; i++ {
		if err := it.Close(); err != nil {
			t.Errorf("Close() #%d error = %v", i+1, err)
		}
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
	if _, ok := it.Next(); ok {
		t.Error("Next() after Close returned a record")
	}
}

func TestEnumerate_ManualNextExhaustionCloses(t *testing.T) {
	src := newHostSource()
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}

	n := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		n++
	}
	if n != 6 {
		t.Errorf("Next() yielded %d records, want 6", n)
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestEnumerate_EmptyList(t *testing.T) {
	src := &fakeSource{}
	it, err := enumerate(opener(src))
	if err != nil {
		t.Fatalf("enumerate() error = %v", err)
	}
	if got := slices.Collect(it.All()); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestEnumerate_Failures(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		src := &fakeSource{listErr: errors.New("netlink: permission denied")}
		it, err := enumerate(opener(src))
		if !errors.Is(err, ErrEnumerationFailed) {
			t.Fatalf("error = %v, want ErrEnumerationFailed", err)
		}
		if it != nil {
			t.Error("expected nil iterator on failure")
		}
		if src.closeCalls != 1 {
			t.Errorf("handle should be released on failure, Close called %d times", src.closeCalls)
		}
	})

	t.Run("handle cannot be opened", func(t *testing.T) {
		cause := errors.New("too many open files")
		_, err := enumerate(func() (source, error) { return nil, cause })
		if !errors.Is(err, ErrEnumerationFailed) {
			t.Errorf("error = %v, want ErrEnumerationFailed", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("error = %v, want it to wrap the cause", err)
		}
	})
}

func TestEnumerate_UsesOpenSource(t *testing.T) {
	src := newHostSource()
	prev := openSource
	openSource = opener(src)
	t.Cleanup(func() { openSource = prev })

	got, err := Interfaces()
	if err != nil {
		t.Fatalf("Interfaces() error = %v", err)
	}
	if len(got) != 6 {
		t.Errorf("Interfaces() returned %d records, want 6", len(got))
	}
	if src.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", src.closeCalls)
	}
}

func TestEnumerate_Host(t *testing.T) {
	it, err := Enumerate()
	if err != nil {
		t.Skipf("host interface enumeration unavailable: %v", err)
	}
	defer it.Close()

	for ni := range it.All() {
		if ni.Name == "" {
			t.Error("record with empty name")
		}
		if ni.HasAddress() && !ni.Address.Is4() {
			t.Errorf("%s: non-IPv4 address %s", ni.Name, ni.Address)
		}
	}
}

func TestDecodeAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     net.Addr
		wantAddr netip.Addr
		wantMask netip.Addr
	}{
		{
			name:     "ipv4 net",
			addr:     ipNet("192.168.1.5/24"),
			wantAddr: netip.MustParseAddr("192.168.1.5"),
			wantMask: netip.MustParseAddr("255.255.255.0"),
		},
		{
			name:     "ipv4 in 16-byte form",
			addr:     &net.IPNet{IP: net.IPv4(10, 1, 2, 3), Mask: net.CIDRMask(8, 32)},
			wantAddr: netip.MustParseAddr("10.1.2.3"),
			wantMask: netip.MustParseAddr("255.0.0.0"),
		},
		{
			name: "ipv6 net",
			addr: ipNet("fe80::1/64"),
		},
		{
			name: "v4-mapped ipv6 with ipv6 mask",
			addr: &net.IPNet{IP: net.IPv4(10, 1, 2, 3), Mask: net.CIDRMask(96, 128)},
		},
		{
			name:     "ipv4 without mask",
			addr:     &net.IPAddr{IP: net.IPv4(172, 16, 0, 1)},
			wantAddr: netip.MustParseAddr("172.16.0.1"),
		},
		{
			name: "ipv6 without mask",
			addr: &net.IPAddr{IP: net.ParseIP("2001:db8::1")},
		},
		{
			name: "nil",
			addr: nil,
		},
		{
			name: "typed nil",
			addr: (*net.IPNet)(nil),
		},
		{
			name: "other address type",
			addr: &net.UnixAddr{Name: "/tmp/sock", Net: "unix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, mask := decodeAddr(tt.addr)
			if addr != tt.wantAddr {
				t.Errorf("addr = %v, want %v", addr, tt.wantAddr)
			}
			if mask != tt.wantMask {
				t.Errorf("mask = %v, want %v", mask, tt.wantMask)
			}
		})
	}
}
