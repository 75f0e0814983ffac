package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stub(t *testing.T, version, commit string, settings ...debug.BuildSetting) {
	t.Helper()
	oldV, oldC, oldR := Version, Commit, readBuildInfo
	t.Cleanup(func() { Version, Commit, readBuildInfo = oldV, oldC, oldR })
	Version, Commit = version, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestShort(t *testing.T) {
	stub(t, "v1.2.0", "0123456789abcdef")
	assert.Equal(t, "v1.2.0", Short())

	stub(t, "dev", "0123456789abcdef")
	assert.Equal(t, "0123456789ab", Short())

	stub(t, "dev", "unknown")
	assert.Equal(t, "dev", Short())

	stub(t, "dev", "unknown",
		debug.BuildSetting{Key: "vcs.revision", Value: "fedcba9876543210"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"})
	assert.Equal(t, "fedcba987654+", Short())
}
