// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/ashokpds15/Myself/pkg/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	// Version is the semantic version, injected at build time via -ldflags
	Version = "dev"
	// GitCommit is the git commit hash, injected at build time
	GitCommit = "unknown"
	// BuildDate is the build timestamp, injected at build time
	BuildDate = "unknown"
)

// BuildInfo is served on /api/version and printed by notifyctl version.
type BuildInfo struct {
	Version   string     `json:"version"`
	GitCommit string     `json:"gitCommit"`
	BuildDate string     `json:"buildDate"`
	GoVersion string     `json:"goVersion"`
	Platform  string     `json:"platform"`
	BuildTime *time.Time `json:"buildTime,omitempty"`
}

// GetBuildInfo returns build metadata
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		info.BuildTime = &t
	}
	return info
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s)", b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
}

// UserAgent returns a User-Agent value such as "notifyctl/1.2.0".
func UserAgent(component string) string {
	return component + "/" + Version
}
