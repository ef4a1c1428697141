package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/attrkit/internal/cli"
)

const (
	cmdName = "attrkit"

	shortDesc = "The attrkit Command Line Interface (CLI)."
	longDesc  = `The attrkit Command Line Interface (CLI).

attrkit prepares MSON / API Elements data structures for rendering. It resolves
references to named data structures, optionally merges base types and mixins,
and filters inherited and included members.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
