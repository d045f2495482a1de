package adapters

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/log"
)

// JobQueueClient turns a journal into an at-least-once work queue.
//
// Jobs are entries of the queue context type, identified by their context id.
// Their state is derived from the success and failure tags. The consumer
// position is the created_at of the latest cursor entry. Nothing is locked:
// reading the cursor and listing jobs are two independent searches, so a
// cursor written between them may cause a job to be skipped or listed twice.
type JobQueueClient struct {
	journal f.JournalProvider
	cfg     f.JobQueueConfig
	metrics *Metrics
	now     func() time.Time
}

var _ f.JobQueue = (*JobQueueClient)(nil)

type JobQueueOption func(*JobQueueClient)

// WithClock replaces the clock used when UpdateCursor is called with a zero time.
func WithClock(now func() time.Time) JobQueueOption {
	return func(q *JobQueueClient) {
		q.now = now
	}
}

func WithJobMetrics(metrics *Metrics) JobQueueOption {
	return func(q *JobQueueClient) {
		q.metrics = metrics
	}
}

func NewJobQueue(journal f.JournalProvider, cfg f.JobQueueConfig, opts ...JobQueueOption) (*JobQueueClient, error) {
	cfg = cfg.WithDefaults()
	if cfg.Credentials.IsZero() {
		return nil, errors.InvalidParameters("job queue requires an access token")
	}
	if cfg.JournalID == uuid.Nil {
		return nil, errors.InvalidParameters("job queue requires a journal id")
	}
	// names end up as single query terms
	for _, name := range []struct{ field, value string }{
		{"context type", cfg.ContextType},
		{"success tag", cfg.SuccessTag},
		{"failure tag", cfg.FailureTag},
		{"cursor context type", cfg.CursorContextType},
	} {
		if strings.ContainsFunc(name.value, unicode.IsSpace) {
			return nil, errors.InvalidParameters("job queue %s must not contain whitespace: %q", name.field, name.value)
		}
	}
	if cfg.SuccessTag == cfg.FailureTag {
		return nil, errors.InvalidParameters("success and failure tags must differ, both are %q", cfg.SuccessTag)
	}
	q := &JobQueueClient{journal: journal, cfg: cfg, now: h.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

func (q *JobQueueClient) Config() f.JobQueueConfig {
	return q.cfg
}

func (q *JobQueueClient) writeOptions() []f.CallOptions {
	if q.cfg.WriteTimeout <= 0 {
		return nil
	}
	return []f.CallOptions{{Timeout: q.cfg.WriteTimeout}}
}

// CreateJob enqueues one job. Enqueuing an existing context id fails with the
// conflict reported by the journal; there is no retry.
func (q *JobQueueClient) CreateJob(ctx context.Context, contextID string, title string, content string) (*f.JournalEntry, error) {
	contextID = strings.TrimSpace(contextID)
	if contextID == "" {
		return nil, errors.InvalidParameters("job id is required")
	}
	contextType := q.cfg.ContextType
	entry, err := q.journal.CreateEntry(ctx, q.cfg.Credentials, q.cfg.JournalID, f.EntryRequest{
		Title:       title,
		Content:     content,
		Tags:        []string{contextType, q.cfg.JobTag(contextID)},
		ContextID:   &contextID,
		ContextType: &contextType,
	}, q.writeOptions()...)
	if err != nil {
		if errors.IsConflict(err) {
			log.Debug("[jobs] job %s already enqueued in %s", contextID, q.cfg.JournalID)
		}
		return nil, err
	}
	q.metrics.jobEvent(contextType, JobEventCreated)
	return entry, nil
}

// ViewQuery builds the search expression selecting the jobs of view.
func (q *JobQueueClient) ViewQuery(view f.JobView) *f.Query {
	query := f.NewQuery().ContextType(q.cfg.ContextType)
	switch view {
	case f.JobsSuccess:
		query.Tag(q.cfg.SuccessTag)
	case f.JobsFailure:
		query.Tag(q.cfg.FailureTag)
	default:
		query.NotTag(q.cfg.SuccessTag).NotTag(q.cfg.FailureTag)
	}
	return query
}

// ListJobs returns the jobs of a view, oldest first.
func (q *JobQueueClient) ListJobs(ctx context.Context, jobs f.JobsQuery) (*f.JobList, error) {
	switch jobs.View {
	case "", f.JobsRemaining, f.JobsSuccess, f.JobsFailure:
	default:
		return nil, errors.InvalidParameters("unknown job view %q", jobs.View)
	}
	query := q.ViewQuery(jobs.View)
	if jobs.UseCursor {
		cursor, err := q.Cursor(ctx)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query.CreatedAfter(cursor.CreatedAt)
		}
	}
	limit := jobs.Limit
	if limit <= 0 {
		limit = f.DefaultJobsListLimit
	}
	results, err := q.journal.Search(ctx, q.cfg.Credentials, q.cfg.JournalID, f.SearchQuery{
		Query:   query.String(),
		Limit:   limit,
		Offset:  jobs.Offset,
		Content: true,
		Order:   f.OrderAscending,
	})
	if err != nil {
		return nil, err
	}
	list := &f.JobList{
		TotalResults: results.TotalResults,
		NextOffset:   results.NextOffset,
		Jobs:         make([]f.Job, 0, len(results.Results)),
	}
	for _, result := range results.Results {
		id, err := result.EntryID()
		if err != nil {
			return nil, errors.Unexpected("invalid entry url in search results: "+result.EntryURL, err)
		}
		list.Jobs = append(list.Jobs, f.Job{ID: id, SearchResult: result})
	}
	return list, nil
}

func (q *JobQueueClient) RemainingJobs(ctx context.Context, useCursor bool, limit int, offset int) (*f.JobList, error) {
	return q.ListJobs(ctx, f.JobsQuery{View: f.JobsRemaining, UseCursor: useCursor, Limit: limit, Offset: offset})
}

// CompleteJob adds the success tag. The job state is not checked.
func (q *JobQueueClient) CompleteJob(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	return q.mark(ctx, jobID, q.cfg.SuccessTag, JobEventCompleted)
}

// FailJob adds the failure tag. The job state is not checked, so a completed
// job marked as failed carries both tags.
func (q *JobQueueClient) FailJob(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	return q.mark(ctx, jobID, q.cfg.FailureTag, JobEventFailed)
}

func (q *JobQueueClient) mark(ctx context.Context, jobID uuid.UUID, tag string, event string) ([]string, error) {
	tags, err := q.journal.CreateTags(ctx, q.cfg.Credentials, q.cfg.JournalID, jobID, []string{tag}, q.writeOptions()...)
	if err != nil {
		return nil, err
	}
	q.metrics.jobEvent(q.cfg.ContextType, event)
	return tags, nil
}

// Cursor returns the most recent cursor entry, nil when none was written yet.
func (q *JobQueueClient) Cursor(ctx context.Context) (*f.SearchResult, error) {
	results, err := q.journal.Search(ctx, q.cfg.Credentials, q.cfg.JournalID, f.SearchQuery{
		Query:   f.NewQuery().ContextType(q.cfg.CursorContextType).String(),
		Limit:   1,
		Content: false,
		Order:   f.OrderDescending,
	})
	if err != nil {
		return nil, err
	}
	if len(results.Results) == 0 {
		return nil, nil
	}
	cursor := results.Results[0]
	return &cursor, nil
}

// UpdateCursor appends a cursor entry created at at, now when at is zero.
// Older cursors are left in place.
func (q *JobQueueClient) UpdateCursor(ctx context.Context, at time.Time) (*f.JournalEntry, error) {
	if at.IsZero() {
		at = q.now()
	}
	tag := q.cfg.CursorTag()
	contextType := q.cfg.CursorContextType
	createdAt := f.NewTimestamp(at)
	entry, err := q.journal.CreateEntry(ctx, q.cfg.Credentials, q.cfg.JournalID, f.EntryRequest{
		Title:       tag,
		Content:     "",
		Tags:        []string{tag},
		ContextType: &contextType,
		CreatedAt:   &createdAt,
	}, q.writeOptions()...)
	if err != nil {
		return nil, err
	}
	q.metrics.jobEvent(q.cfg.ContextType, JobEventCursor)
	return entry, nil
}

// ProcessRemaining runs handler over one page of remaining jobs, in order,
// and marks each one complete or failed from the handler result. The cursor
// is not moved.
func (q *JobQueueClient) ProcessRemaining(ctx context.Context, limit int, handler f.JobHandler) (*f.ProcessSummary, error) {
	list, err := q.RemainingJobs(ctx, true, limit, 0)
	if err != nil {
		return nil, err
	}
	summary := &f.ProcessSummary{Succeeded: []uuid.UUID{}, Failed: []uuid.UUID{}}
	for _, job := range list.Jobs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Processed++
		if herr := handler(ctx, job); herr != nil {
			log.Warn("[jobs] job %s failed: %v", job.ID, herr)
			if _, err := q.FailJob(ctx, job.ID); err != nil {
				return summary, err
			}
			summary.Failed = append(summary.Failed, job.ID)
			continue
		}
		if _, err := q.CompleteJob(ctx, job.ID); err != nil {
			return summary, err
		}
		summary.Succeeded = append(summary.Succeeded, job.ID)
	}
	return summary, nil
}
