// Outexplain - explain your last terminal command, right in the terminal
package main

import (
	"os"

	"github.com/skyresth/outexplain/internal/ui"
)

var (
	// Version info
	version = "1.0.9"
	commit  = "dev"
)

func main() {
	if err := Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
