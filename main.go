package main

import (
	"os"

	"github.com/openclaw/pairctl/cmd"
	"github.com/openclaw/pairctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
