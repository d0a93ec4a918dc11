// Package version reports how the running pubd binary was built.
//
// Release builds stamp the variables below with ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/pubd/internal/version.Version=v1.0.0"
//
// Anything left unstamped falls back to the module build info.
package version

import (
	"runtime"
	"runtime/debug"
)

// Set via ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the build description printed by "pubd version".
type Info struct {
	BuildTag  string `json:"build_tag"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get collects build information.
func Get() Info {
	info := Info{
		BuildTag:  Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fill(bi)
	}
	for _, f := range []*string{&info.BuildTime, &info.GitCommit} {
		if *f == "" {
			*f = "unknown"
		}
	}
	return info
}

func (i *Info) fill(bi *debug.BuildInfo) {
	if i.BuildTag == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.BuildTag = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value
				if len(i.GitCommit) > 12 {
					i.GitCommit = i.GitCommit[:12]
				}
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

// Lines returns label/value pairs in display order.
func (i Info) Lines() [][2]string {
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}
	return [][2]string{
		{"Build Tag", i.BuildTag},
		{"Build Time", i.BuildTime},
		{"Git Commit", commit},
		{"Go Version", i.GoVersion},
		{"Platform", i.Platform},
	}
}
