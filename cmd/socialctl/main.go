package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-social/internal/cli"
	"github.com/goliatone/go-social/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		var exitErr *cli.ExitError
		// operation failures were already printed as an envelope
		if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
