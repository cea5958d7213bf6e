package main

import (
	"os"

	"risk-dashboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
