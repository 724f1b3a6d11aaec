// ABOUTME: Entry point for the nello CLI
// ABOUTME: Command-line tool for the Nello door-intercom service

package main

import (
	"fmt"
	"os"

	"github.com/nello-io/nello-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
