package jobs

import (
	"context"
	"flag"

	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type CreateCommand struct {
	*base.Command

	queueFlags
	flagID      string
	flagTitle   string
	flagContent string
}

func (c *CreateCommand) Synopsis() string {
	return "Enqueue a job"
}

func (c *CreateCommand) Help() string {
	return `Usage: bugout jobs create -journal <id> -id <job-id> [options]

  Creates a job entry. Fails when a job with the same id already exists in
  the queue.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("jobs create", flag.ContinueOnError))
	c.register(f)
	f.StringVar(&c.flagID, "id", "", "Job id, unique within the queue")
	f.StringVar(&c.flagTitle, "title", "", "Job title, defaults to the job id")
	f.StringVar(&c.flagContent, "content", "", "Job payload")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	queue, err := c.queue()
	if err != nil {
		return c.Fail("%v", err)
	}
	title := c.flagTitle
	if title == "" {
		title = c.flagID
	}
	entry, err := queue.CreateJob(context.Background(), c.flagID, title, c.flagContent)
	if err != nil {
		return c.Fail("could not create job: %v", err)
	}
	return c.Output(entry)
}
