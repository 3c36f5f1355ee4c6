package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// FeatureSchema names the layout of the feature vector a model consumes.
// A model artifact trained under another schema is rejected at load time.
const FeatureSchema = "mfcc13-mean/v1"

// Info represents version information.
type Info struct {
	Version       string    `json:"version"`
	GitCommit     string    `json:"git_commit,omitempty"`
	BuildTime     string    `json:"build_time"`
	GoVersion     string    `json:"go_version"`
	FeatureSchema string    `json:"feature_schema"`
	BuildDate     time.Time `json:"-"`
	IsRelease     bool      `json:"is_release"`
	IsDirty       bool      `json:"is_dirty"`
}

// GetVersionInfo returns build information, falling back to VCS settings
// embedded by the Go toolchain when ldflags were not supplied.
func GetVersionInfo() *Info {
	info := &Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		FeatureSchema: FeatureSchema,
		IsRelease:     Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if GitCommit == "" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			case "vcs.time":
				if BuildTime == "" {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
						info.BuildTime = setting.Value
					}
				}
			}
		}
	}

	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}

	return info
}

// GetShortVersion returns a short version string.
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit != "" {
		if info.IsDirty {
			return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
		}
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
	return info.Version
}

// String renders the info for the version command.
func (i *Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pronounce %s\n", i.Version)
	if i.GitCommit != "" {
		fmt.Fprintf(&b, "  commit:   %s\n", i.GitCommit)
	}
	fmt.Fprintf(&b, "  built:    %s\n", i.BuildTime)
	if i.GoVersion != "" {
		fmt.Fprintf(&b, "  go:       %s\n", i.GoVersion)
	}
	fmt.Fprintf(&b, "  features: %s\n", i.FeatureSchema)
	return b.String()
}
