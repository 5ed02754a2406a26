package main

import (
	"os"

	"github.com/seatwise/seatplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
