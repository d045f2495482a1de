package jobs

import (
	"context"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
	"github.com/soffa-projects/bugout-go/log"
)

type WorkCommand struct {
	*base.Command

	queueFlags
	flagExec          string
	flagLimit         int
	flagAdvanceCursor bool
}

func (c *WorkCommand) Synopsis() string {
	return "Run a shell command over the remaining jobs"
}

func (c *WorkCommand) Help() string {
	return `Usage: bugout jobs work -journal <id> -exec <command> [options]

  Runs the command once per remaining job, oldest first. The job content is
  written to its stdin and BUGOUT_JOB_ID, BUGOUT_JOB_TITLE are set in its
  environment. A zero exit status completes the job, anything else fails it.` + c.Flags().Help()
}

func (c *WorkCommand) Flags() *base.FlagSet {
	fs := base.NewFlagSet(flag.NewFlagSet("jobs work", flag.ContinueOnError))
	c.register(fs)
	fs.StringVar(&c.flagExec, "exec", "", "Command run by sh -c for each job")
	fs.IntVar(&c.flagLimit, "limit", f.DefaultJobsListLimit, "Maximum number of jobs processed")
	fs.BoolVar(&c.flagAdvanceCursor, "advance-cursor", false, "Append a cursor at the batch start time when fewer than -limit jobs were left")
	return fs
}

func (c *WorkCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	if strings.TrimSpace(c.flagExec) == "" {
		return c.Fail("-exec is required")
	}
	queue, err := c.queue()
	if err != nil {
		return c.Fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := h.Now()
	summary, err := queue.ProcessRemaining(ctx, c.flagLimit, c.run)
	if err != nil {
		if summary != nil {
			c.Output(summary)
		}
		return c.Fail("processing stopped: %v", err)
	}
	// a full batch may have left older jobs behind, so the cursor only moves
	// once the remaining view was drained
	if c.flagAdvanceCursor && summary.Processed > 0 && summary.Processed < c.flagLimit {
		if _, err := queue.UpdateCursor(ctx, started); err != nil {
			return c.Fail("could not update cursor: %v", err)
		}
	}
	return c.Output(summary)
}

func (c *WorkCommand) run(ctx context.Context, job f.Job) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.flagExec)
	cmd.Stdin = strings.NewReader(h.PtrStr(job.Content))
	cmd.Env = append(os.Environ(), "BUGOUT_JOB_ID="+job.ID.String(), "BUGOUT_JOB_TITLE="+job.Title)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		log.Info("[jobs] %s: %s", job.ID, strings.TrimSpace(string(out)))
	}
	return err
}
