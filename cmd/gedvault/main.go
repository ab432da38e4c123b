package main

import (
	"os"

	"github.com/gedvault/gedvault/internal/cli"
	"github.com/gedvault/gedvault/pkg/buildinfo"
)

func main() {
	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
