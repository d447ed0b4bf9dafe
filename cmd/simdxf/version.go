package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/health"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the tool version, the file format versions it reads and writes, and build details.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "simdxf %s\n", Version)
		fmt.Fprintf(out, "Format Version: %d (reads %d-%d)\n", version.Current, version.Oldest, version.Current)
		fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func versionInfo() health.VersionInfo {
	return health.VersionInfo{
		Version:       Version,
		Commit:        GitCommit,
		BuildTime:     BuildDate,
		GoVersion:     runtime.Version(),
		FormatVersion: version.Current,
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
