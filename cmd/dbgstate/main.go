// Command dbgstate dispatches, journals, replays and inspects debugger
// state actions.
package main

import (
	"os"

	"github.com/roach88/dbgstate/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
