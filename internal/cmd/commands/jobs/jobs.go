package jobs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/cli"
	"github.com/soffa-projects/bugout-go/adapters"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Work with a journal-backed job queue"
}

func (c *Command) Help() string {
	return `Usage: bugout jobs <subcommand> [options] [args]

  This command groups subcommands enqueuing, listing and settling jobs stored
  as entries of a Spire journal. Every subcommand needs -journal and an access
  token (-token or BUGOUT_ACCESS_TOKEN).`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// queueFlags select the journal and the naming of one queue.
type queueFlags struct {
	base.ClientFlags

	journal           string
	contextType       string
	successTag        string
	failureTag        string
	cursorContextType string
}

func (q *queueFlags) register(fs *base.FlagSet) {
	q.ClientFlags.Register(fs)
	fs.StringVar(&q.journal, "journal", "", "ID of the journal holding the queue")
	fs.StringVar(&q.contextType, "context-type", f.DefaultJobContextType, "Context type of job entries")
	fs.StringVar(&q.successTag, "success-tag", f.DefaultJobSuccessTag, "Tag marking completed jobs")
	fs.StringVar(&q.failureTag, "failure-tag", f.DefaultJobFailureTag, "Tag marking failed jobs")
	fs.StringVar(&q.cursorContextType, "cursor-context-type", f.DefaultJobCursorContext, "Context type of cursor entries")
}

func (q *queueFlags) queue() (*adapters.JobQueueClient, error) {
	journalID, err := uuid.Parse(q.journal)
	if err != nil {
		return nil, fmt.Errorf("invalid -journal %q: %w", q.journal, err)
	}
	creds, err := q.Credentials()
	if err != nil {
		return nil, err
	}
	client, err := q.Client()
	if err != nil {
		return nil, err
	}
	return client.NewJobQueue(f.JobQueueConfig{
		Credentials:       creds,
		JournalID:         journalID,
		ContextType:       q.contextType,
		SuccessTag:        q.successTag,
		FailureTag:        q.failureTag,
		CursorContextType: q.cursorContextType,
	})
}
