package main

import (
	"os"

	"github.com/abhisek/mathcaptcha/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
