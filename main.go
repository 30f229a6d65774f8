package main

import (
	"os"

	"github.com/talentpath/assist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
