package f

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobView is a tag-derived partition of a queue's jobs.
type JobView string

const (
	JobsRemaining JobView = "remaining"
	JobsSuccess   JobView = "success"
	JobsFailure   JobView = "failure"
)

func ParseJobView(value string) (JobView, error) {
	switch JobView(value) {
	case "", JobsRemaining:
		return JobsRemaining, nil
	case JobsSuccess:
		return JobsSuccess, nil
	case JobsFailure:
		return JobsFailure, nil
	}
	return "", fmt.Errorf("unknown job view: %q", value)
}

const (
	DefaultJobContextType   = "job"
	DefaultJobSuccessTag    = "job:success"
	DefaultJobFailureTag    = "job:failure"
	DefaultJobCursorContext = "job_cursor"
	DefaultJobsListLimit    = DefaultSearchLimit
)

// JobQueueConfig is owned by a single queue. Consumers sharing the same
// (SuccessTag, FailureTag, CursorContextType) share one cursor.
type JobQueueConfig struct {
	Credentials       Credentials
	JournalID         uuid.UUID
	ContextType       string
	SuccessTag        string
	FailureTag        string
	CursorContextType string
	// WriteTimeout applies to entry and tag writes; zero uses the client default.
	WriteTimeout time.Duration
}

// WithDefaults fills blank names with the Default* constants.
func (c JobQueueConfig) WithDefaults() JobQueueConfig {
	if c.ContextType == "" {
		c.ContextType = DefaultJobContextType
	}
	if c.SuccessTag == "" {
		c.SuccessTag = DefaultJobSuccessTag
	}
	if c.FailureTag == "" {
		c.FailureTag = DefaultJobFailureTag
	}
	if c.CursorContextType == "" {
		c.CursorContextType = DefaultJobCursorContext
	}
	return c
}

// JobTag is the per-job identity tag, "{context_type}:{context_id}".
func (c JobQueueConfig) JobTag(contextID string) string {
	return fmt.Sprintf("%s:%s", c.ContextType, contextID)
}

func (c JobQueueConfig) CursorTag() string {
	return fmt.Sprintf("cursor:%s", c.CursorContextType)
}

// Job is a search hit with the entry id resolved from its url.
type Job struct {
	ID uuid.UUID `json:"id"`
	SearchResult
}

type JobsQuery struct {
	View      JobView
	UseCursor bool
	Limit     int
	Offset    int
}

type JobList struct {
	TotalResults int   `json:"total_results"`
	NextOffset   *int  `json:"next_offset"`
	Jobs         []Job `json:"jobs"`
}

// JobHandler processes one job; a nil error marks it successful.
type JobHandler func(ctx context.Context, job Job) error

type ProcessSummary struct {
	Processed int         `json:"processed"`
	Succeeded []uuid.UUID `json:"succeeded"`
	Failed    []uuid.UUID `json:"failed"`
}

type JobQueue interface {
	Config() JobQueueConfig
	CreateJob(ctx context.Context, contextID string, title string, content string) (*JournalEntry, error)
	ListJobs(ctx context.Context, query JobsQuery) (*JobList, error)
	RemainingJobs(ctx context.Context, useCursor bool, limit int, offset int) (*JobList, error)
	CompleteJob(ctx context.Context, jobID uuid.UUID) ([]string, error)
	FailJob(ctx context.Context, jobID uuid.UUID) ([]string, error)
	UpdateCursor(ctx context.Context, at time.Time) (*JournalEntry, error)
	Cursor(ctx context.Context) (*SearchResult, error)
	ProcessRemaining(ctx context.Context, limit int, handler JobHandler) (*ProcessSummary, error)
}
