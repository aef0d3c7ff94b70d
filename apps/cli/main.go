package main

import (
	"github.com/sycl-conformance/ctskit/apps/cli/cmd"
	// Registers the built-in harness verification suite.
	_ "github.com/sycl-conformance/ctskit/packages/selfcheck"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
