package main

import (
	"os"

	"github.com/kennt44/teachme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
