// Command swipedemo renders and drives the swipe row sample screen.
package main

import (
	"os"

	"github.com/go-drift/swipeactions/cmd/swipedemo/cmd"
)

func main() {
	if err := cmd.NewRootCmd(cmd.Version).Execute(); err != nil {
		os.Exit(1)
	}
}
