package jobs

import (
	"context"
	"flag"

	"github.com/google/uuid"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

// MarkCommand settles jobs, as failed when Failure is set.
type MarkCommand struct {
	*base.Command
	Failure bool

	queueFlags
}

func (c *MarkCommand) name() string {
	if c.Failure {
		return "fail"
	}
	return "complete"
}

func (c *MarkCommand) Synopsis() string {
	if c.Failure {
		return "Mark jobs as failed"
	}
	return "Mark jobs as completed"
}

func (c *MarkCommand) Help() string {
	return `Usage: bugout jobs ` + c.name() + ` -journal <id> [options] <entry-id>...

  Tags the given job entries. Their current state is not checked.` + c.Flags().Help()
}

func (c *MarkCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("jobs "+c.name(), flag.ContinueOnError))
	c.register(f)
	return f
}

func (c *MarkCommand) Run(args []string) int {
	fs := c.Flags()
	if err := fs.Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	if fs.NArg() == 0 {
		return c.Fail("at least one job entry id is required")
	}
	ids := make([]uuid.UUID, 0, fs.NArg())
	for _, arg := range fs.Args() {
		id, err := uuid.Parse(arg)
		if err != nil {
			return c.Fail("invalid job entry id %q: %v", arg, err)
		}
		ids = append(ids, id)
	}
	queue, err := c.queue()
	if err != nil {
		return c.Fail("%v", err)
	}
	mark := queue.CompleteJob
	if c.Failure {
		mark = queue.FailJob
	}
	tags := map[string][]string{}
	for _, id := range ids {
		result, err := mark(context.Background(), id)
		if err != nil {
			return c.Fail("could not %s job %s: %v", c.name(), id, err)
		}
		tags[id.String()] = result
	}
	return c.Output(tags)
}
