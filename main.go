package main

import (
	"os"

	"github.com/Photon1c/pulselinestudio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
