// Package version carries build metadata set with -ldflags.
package version

import (
	"flag"
	"fmt"
	"runtime"
)

var (
	Version   = "develop"
	GitCommit = ""
	BuildDate = ""
)

type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

func Get() BuildInfo {
	v := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	// keep test output stable across toolchains
	if flag.Lookup("test.v") != nil {
		v.GoVersion = ""
	}
	return v
}

// String is the one-line form used in the log at startup
func (b BuildInfo) String() string {
	s := b.Version
	if b.GitCommit != "" {
		s += fmt.Sprintf(" (%s)", b.GitCommit)
	}
	if b.BuildDate != "" {
		s += " built " + b.BuildDate
	}
	return s
}
