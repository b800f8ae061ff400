package main

import (
	"os"

	"github.com/recaplabs/claude-recap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
