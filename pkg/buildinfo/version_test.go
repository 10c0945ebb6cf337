package buildinfo

import (
	"strings"
	"testing"
)

func TestGetOverrides(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "0123456789abcdef", "2026-01-02"
	info := Get()

	if info.Version != "v1.2.3" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want 12-char prefix", info.Commit)
	}
	if info.Date != "2026-01-02" {
		t.Errorf("Date = %q", info.Date)
	}
	if !strings.Contains(info.String(), "version: v1.2.3") {
		t.Errorf("String() = %q", info.String())
	}
}

func TestGetFallbacks(t *testing.T) {
	info := Get()
	if info.Version == "" || info.Commit == "" || info.Date == "" || info.GoVersion == "" {
		t.Errorf("Get() left fields empty: %+v", info)
	}
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("Template() must reference the command name")
	}
}
