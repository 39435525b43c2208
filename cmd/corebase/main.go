// Command corebase samples host resources and manages network connections.
package main

import "github.com/seregonwar/CoreBaseApplication/internal/cli"

// Stamped by the release build, e.g.
//
//	go build -ldflags "-X main.version=0.3.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%F)" ./cmd/corebase
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
