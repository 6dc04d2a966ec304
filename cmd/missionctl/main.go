package main

import (
	"os"

	"github.com/diewo77/go-missions/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
