package main

import (
	"fmt"
	"os"

	"github.com/iudanet/fleetsync/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit))

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
