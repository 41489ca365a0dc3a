package main

import (
	"os"

	"github.com/ironsheep/brandcolor/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := cli.NewRootCmd(cli.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
