package main

import (
	"context"
	"os"

	"github.com/cppla/classboard/cmd"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "develop"

func main() {
	if err := cmd.NewRootCmd(Version).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
