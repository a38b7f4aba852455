package main

import (
	"os"

	"github.com/diarymd-dev/diarymd/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
