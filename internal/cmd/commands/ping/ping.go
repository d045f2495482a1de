package ping

import (
	"context"
	"flag"

	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	client base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Check that Brood and Spire are reachable"
}

func (c *Command) Help() string {
	return `Usage: bugout ping [options]

  Pings both Bugout services and prints the health report. Exits 1 when a
  service is down.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("ping", flag.ContinueOnError))
	f.StringVar(&c.client.ConfigPath, "config", "", "Path to a TOML settings file overlaying the BUGOUT_* environment")
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	client, err := c.client.Client()
	if err != nil {
		return c.Fail("%v", err)
	}
	health := client.Health(context.Background())
	if code := c.Output(health); code != 0 {
		return code
	}
	if !health.IsUp() {
		return 1
	}
	return 0
}
