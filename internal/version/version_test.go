package version

import (
	"strings"
	"testing"
)

func TestBuildInfoInitialized(t *testing.T) {
	if Version == "" || BuildTime == "" || GitCommit == "" {
		t.Fatal("build metadata must never be empty")
	}
}

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	got := String()
	if !strings.HasPrefix(got, "siteimport v1.2.3 ") {
		t.Errorf("String() = %q", got)
	}
	if !strings.Contains(got, GitCommit) {
		t.Errorf("String() = %q, missing commit", got)
	}
}
