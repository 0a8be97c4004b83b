package main

import (
	"os"

	"github.com/dshills/tfreview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
