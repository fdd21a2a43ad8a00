package main

import (
	"os"

	"github.com/cubahno/schematest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
