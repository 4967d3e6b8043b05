package main

import (
	"os"

	"github.com/llehouerou/waveplay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
