package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	settings := func(kv ...string) []debug.BuildSetting {
		var s []debug.BuildSetting
		for i := 0; i+1 < len(kv); i += 2 {
			s = append(s, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
		}
		return s
	}

	tests := []struct {
		name        string
		info        *debug.BuildInfo
		version     string
		commit      string
		wantVersion string
		wantCommit  string
	}{
		{
			name: "vcs stamp",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: settings("vcs.revision", "0123456789abcdef", "vcs.time", "2025-03-04T10:00:00Z"),
			},
			wantVersion: "dev-20250304",
			wantCommit:  "0123456",
		},
		{
			name: "dirty tree",
			info: &debug.BuildInfo{
				Settings: settings("vcs.revision", "abc", "vcs.modified", "true"),
			},
			wantCommit: "abc-dirty",
		},
		{
			name:        "module version",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			wantVersion: "v0.3.0",
		},
		{
			name: "ldflags win",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.0"},
				Settings: settings("vcs.revision", "0123456789abcdef"),
			},
			version:     "v1.0.0",
			commit:      "feedbee",
			wantVersion: "v1.0.0",
			wantCommit:  "feedbee",
		},
		{
			name: "nothing stamped",
			info: &debug.BuildInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := fromBuildInfo(tt.info, tt.version, tt.commit)
			if v != tt.wantVersion {
				t.Errorf("version = %q, want %q", v, tt.wantVersion)
			}
			if c != tt.wantCommit {
				t.Errorf("commit = %q, want %q", c, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	got := Full()
	if !strings.Contains(got, Version) || !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Full() = %q", got)
	}
	if Version == "" || Commit == "" {
		t.Error("init should always populate Version and Commit")
	}
}

func TestPlatform(t *testing.T) {
	if p := Platform(); !strings.Contains(p, "/") {
		t.Errorf("Platform() = %q, want GOOS/GOARCH", p)
	}
	if !strings.HasPrefix(GoVersion(), "go") && !strings.HasPrefix(GoVersion(), "devel") {
		t.Errorf("GoVersion() = %q", GoVersion())
	}
}
