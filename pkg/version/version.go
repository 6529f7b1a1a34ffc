package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "0.4.2"
	AppName   = "TMSHarness"
	BuildDate = "unknown"
	// Commit is set with -ldflags; otherwise it is read from the embedded VCS stamp.
	Commit = ""
)

// Messages lists the ISO 20022 message types the harness can build and send.
var Messages = []string{"pacs.008.001.10", "pacs.002.001.12", "pain.001.001.11", "pain.013.001.09"}

type Info struct {
	AppName   string   `json:"app_name"`
	Version   string   `json:"version"`
	Commit    string   `json:"commit,omitempty"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Messages  []string `json:"messages"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		Commit:    commit(),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Messages:  Messages,
	}
}

func commit() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

// UserAgent identifies the harness on outbound TMS calls.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", AppName, Version)
}
