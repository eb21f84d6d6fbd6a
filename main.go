package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/99thDragon/nyla-sprint-99thDragon/cmd"
)

// version is overridden at build time via -ldflags.
var version = "1.0.0"

func main() {
	if err := fang.Execute(context.Background(), cmd.GetRootCommand(version)); err != nil {
		os.Exit(1)
	}
}
