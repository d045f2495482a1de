package jobs

import (
	"context"
	"flag"
	"time"

	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type CursorCommand struct {
	*base.Command

	queueFlags
	flagUpdate bool
	flagAt     string
}

func (c *CursorCommand) Synopsis() string {
	return "Show or move the queue cursor"
}

func (c *CursorCommand) Help() string {
	return `Usage: bugout jobs cursor -journal <id> [-update [-at <timestamp>]]

  Prints the latest cursor entry, or null when none was written. With -update,
  appends a cursor at the given time (now by default). Jobs created at or
  before the latest cursor are hidden from cursor-bound listings.` + c.Flags().Help()
}

func (c *CursorCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("jobs cursor", flag.ContinueOnError))
	c.register(f)
	f.BoolVar(&c.flagUpdate, "update", false, "Append a new cursor")
	f.StringVar(&c.flagAt, "at", "", "Cursor time, any format dateparse understands")
	return f
}

func (c *CursorCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	queue, err := c.queue()
	if err != nil {
		return c.Fail("%v", err)
	}
	ctx := context.Background()
	if !c.flagUpdate {
		cursor, err := queue.Cursor(ctx)
		if err != nil {
			return c.Fail("could not read cursor: %v", err)
		}
		return c.Output(cursor)
	}
	var at time.Time
	if c.flagAt != "" {
		if at, err = h.ParseTimestamp(c.flagAt); err != nil {
			return c.Fail("invalid -at %q: %v", c.flagAt, err)
		}
	}
	entry, err := queue.UpdateCursor(ctx, at)
	if err != nil {
		return c.Fail("could not update cursor: %v", err)
	}
	return c.Output(entry)
}
