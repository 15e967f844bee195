package main

import (
	"os"

	"github.com/microtonal-studio/patchctl/cmd"
	"github.com/microtonal-studio/patchctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
