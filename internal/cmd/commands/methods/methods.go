package methods

import (
	"strings"

	"github.com/soffa-projects/bugout-go"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List the operations of the Bugout client"
}

func (c *Command) Help() string {
	return `Usage: bugout methods

  Prints the name of every operation available on bugout.Client, one per line.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(strings.Join(bugout.Methods(), "\n"))
	return 0
}
