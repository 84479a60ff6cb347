package main

import (
	"os"

	"github.com/psidex/knowmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
