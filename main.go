package main

import (
	"os"

	"github.com/eldrige/skillsassess/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
