// Package main provides the pronounce binary.
//
// Usage:
//
//	pronounce [--config file] [--env-file file] <command> [args]
//
// Commands:
//
//	serve       - run the HTTP assessment service
//	assess      - score one recording and print the result
//	train       - train the demo model and store it
//	words       - list the word catalog
//	references  - manage reference recordings
//	version     - print build information
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/pronounce/cmd/pronounce/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
