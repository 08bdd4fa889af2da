package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	tests := []struct {
		name        string
		preset      [3]string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:        "go install",
			preset:      [3]string{"dev", "none", "unknown"},
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.2.0"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVersion: "v0.2.0",
			wantCommit:  "abc123",
		},
		{
			name:        "devel build",
			preset:      [3]string{"dev", "none", "unknown"},
			info:        debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "none",
		},
		{
			name:        "ldflags win",
			preset:      [3]string{"v1.0.0", "deadbeef", "2026-01-01"},
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.2.0"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVersion: "v1.0.0",
			wantCommit:  "deadbeef",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c, d := Version, Commit, Date
			t.Cleanup(func() { Version, Commit, Date = v, c, d })
			Version, Commit, Date = tt.preset[0], tt.preset[1], tt.preset[2]

			fillFrom(&tt.info)
			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
