package jobs

import (
	"context"
	"flag"

	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	queueFlags
	flagView      string
	flagUseCursor bool
	flagLimit     int
	flagOffset    int
}

func (c *ListCommand) Synopsis() string {
	return "List remaining, completed or failed jobs"
}

func (c *ListCommand) Help() string {
	return `Usage: bugout jobs list -journal <id> [options]

  Lists the jobs of one view, oldest first.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	fs := base.NewFlagSet(flag.NewFlagSet("jobs list", flag.ContinueOnError))
	c.register(fs)
	fs.StringVar(&c.flagView, "view", string(f.JobsRemaining), "One of remaining, success, failure")
	fs.BoolVar(&c.flagUseCursor, "use-cursor", true, "Only list jobs created after the latest cursor")
	fs.IntVar(&c.flagLimit, "limit", f.DefaultJobsListLimit, "Page size")
	fs.IntVar(&c.flagOffset, "offset", 0, "Page offset")
	return fs
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	view, err := f.ParseJobView(c.flagView)
	if err != nil {
		return c.Fail("%v", err)
	}
	queue, err := c.queue()
	if err != nil {
		return c.Fail("%v", err)
	}
	list, err := queue.ListJobs(context.Background(), f.JobsQuery{
		View:      view,
		UseCursor: c.flagUseCursor,
		Limit:     c.flagLimit,
		Offset:    c.flagOffset,
	})
	if err != nil {
		return c.Fail("could not list jobs: %v", err)
	}
	return c.Output(list)
}
