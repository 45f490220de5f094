package logging

import (
	"net/netip"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubFlags string

func (s stubFlags) String() string { return string(s) }

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := logger
	SetLogger(zap.New(core))
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "unknown level rejected", level: "verbose", wantErr: true},
	}

	prev := logger
	t.Cleanup(func() { logger = prev })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Initialize(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	prev := logger
	t.Cleanup(func() { logger = prev })

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize(\"\") error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected nop logger when no level is configured")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	prev := logger
	t.Cleanup(func() { logger = prev })

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestLogPollSent(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	src := netip.MustParseAddrPort("192.168.1.5:6454")
	dst := netip.MustParseAddrPort("10.255.255.255:6454")
	LogPollSent(3, src, dst, []byte("Art-Net\x00"))

	entries := logs.FilterMessage("ArtPoll sent").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["iteration"] != int64(3) {
		t.Errorf("iteration = %v, want 3", fields["iteration"])
	}
	if fields["target"] != "10.255.255.255:6454" {
		t.Errorf("target = %v", fields["target"])
	}
	if fields["hex_dump"] != "4172742d4e657400" {
		t.Errorf("hex_dump = %v", fields["hex_dump"])
	}
}

func TestLogPollSent_NoHexDumpAtInfo(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	LogPollSent(1, netip.AddrPort{}, netip.AddrPort{}, []byte{0x01})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if _, ok := entries[0].ContextMap()["hex_dump"]; ok {
		t.Error("hex_dump should only be attached at debug level")
	}
}

func TestLogInterface(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogInterface("lo", netip.Addr{}, stubFlags("UP|LOOPBACK"), false)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["address"] != "none" {
		t.Errorf("address = %v, want none", fields["address"])
	}
	if fields["flags"] != "UP|LOOPBACK" {
		t.Errorf("flags = %v", fields["flags"])
	}
}

func TestDumps(t *testing.T) {
	data := []byte{'A', 0x00, 'z', 0x7f}
	if got := hexDump(data); got != "41007a7f" {
		t.Errorf("hexDump = %q", got)
	}
	if got := asciiDump(data); got != "A.z." {
		t.Errorf("asciiDump = %q", got)
	}

	long := make([]byte, maxDumpBytes+10)
	if got := hexDump(long); !strings.HasSuffix(got, "...") || len(got) != maxDumpBytes*2+3 {
		t.Errorf("hexDump should truncate to %d bytes, got len %d", maxDumpBytes, len(got))
	}
	if got := asciiDump(long); len(got) != maxDumpBytes {
		t.Errorf("asciiDump len = %d, want %d", len(got), maxDumpBytes)
	}
	if hexDump(nil) != "" || asciiDump(nil) != "" {
		t.Error("empty input should produce empty dumps")
	}
}

func TestLogRawBytes(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogRawBytes("ArtPoll", []byte("Art-Net\x00"))

	entries := logs.FilterMessage("ArtPoll").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["length"] != int64(8) {
		t.Errorf("length = %v, want 8", fields["length"])
	}
	if fields["hex"] != "4172742d4e657400" || fields["ascii"] != "Art-Net." {
		t.Errorf("dump fields = %v", fields)
	}

	quiet := observe(t, zapcore.InfoLevel)
	LogRawBytes("ArtPoll", []byte{0x00})
	if quiet.Len() != 0 {
		t.Error("raw bytes should only be logged at debug")
	}
}
