package main

import (
	"context"
	"os"

	"github.com/frherrer/docsuite/internal/cli"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), version); err != nil {
		os.Exit(1)
	}
}
