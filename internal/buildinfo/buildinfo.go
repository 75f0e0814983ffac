// Package buildinfo identifies the running build in the boot banner and
// window title.
package buildinfo

import "runtime/debug"

// Version and Commit are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Short returns the release version, else the commit (from -ldflags or
// the toolchain's VCS stamp, cut to 12 characters), else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return shorten(Commit)
	}
	if rev := vcsRevision(); rev != "" {
		return rev
	}
	return "dev"
}

func shorten(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func vcsRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	rev, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return ""
	}
	rev = shorten(rev)
	if dirty {
		rev += "+"
	}
	return rev
}
