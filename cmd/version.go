package main

import (
	"os"

	msgbridge "github.com/0xPolygon/msgbridge"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	msgbridge.PrintVersion(os.Stdout)
	return nil
}
