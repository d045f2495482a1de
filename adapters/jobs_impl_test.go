package adapters

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/devserver"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/test"
)

const _jobsToken = "jobs-token"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type jobsFixture struct {
	assert  test.Assertions
	clock   *fakeClock
	journal *JournalClient
	queue   *JobQueueClient
	metrics *Metrics
}

func newJobsFixture(t *testing.T, cfg f.JobQueueConfig) *jobsFixture {
	assert := test.NewAssertions(t)
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	server := httptest.NewServer(devserver.New(devserver.Options{Tokens: []string{_jobsToken}, Now: clock.Now}).Handler())
	t.Cleanup(server.Close)

	spire, err := NewTransport(ServiceSpire, server.URL, 2*time.Second, nil)
	assert.Nil(err)
	journals := NewJournalClient(spire)
	journal, err := journals.CreateJournal(context.Background(), f.Bearer(_jobsToken), "jobs", f.JournalTypeDefault)
	assert.Nil(err)

	cfg.Credentials = f.Bearer(_jobsToken)
	cfg.JournalID = journal.ID
	metrics := NewMetrics(prometheus.NewRegistry())
	queue, err := NewJobQueue(journals, cfg, WithClock(clock.Now), WithJobMetrics(metrics))
	assert.Nil(err)
	return &jobsFixture{assert: assert, clock: clock, journal: journals, queue: queue, metrics: metrics}
}

// enqueue creates one job per id, one second apart.
func (fx *jobsFixture) enqueue(ids ...string) {
	for _, id := range ids {
		fx.clock.Advance(time.Second)
		_, err := fx.queue.CreateJob(context.Background(), id, "title "+id, faker.Sentence())
		fx.assert.Nil(err)
	}
}

func (fx *jobsFixture) list(view f.JobView, useCursor bool) []f.Job {
	list, err := fx.queue.ListJobs(context.Background(), f.JobsQuery{View: view, UseCursor: useCursor, Limit: 100})
	fx.assert.Nil(err)
	return list.Jobs
}

func (fx *jobsFixture) find(view f.JobView, contextID string) f.Job {
	tag := fx.queue.Config().JobTag(contextID)
	for _, job := range fx.list(view, false) {
		if job.HasTag(tag) {
			return job
		}
	}
	fx.assert.True(false, fmt.Sprintf("job %s not found in %s", contextID, view))
	return f.Job{}
}

func titles(jobs []f.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.Title)
	}
	return out
}

func TestNewJobQueue_Validation(t *testing.T) {
	assert := test.NewAssertions(t)
	var invalid *errors.InvalidParametersError

	_, err := NewJobQueue(nil, f.JobQueueConfig{JournalID: uuid.New()})
	assert.True(stderrors.As(err, &invalid))

	_, err = NewJobQueue(nil, f.JobQueueConfig{Credentials: f.Bearer("t")})
	assert.True(stderrors.As(err, &invalid))

	_, err = NewJobQueue(nil, f.JobQueueConfig{Credentials: f.Bearer("t"), JournalID: uuid.New(), SuccessTag: "done", FailureTag: "done"})
	assert.True(stderrors.As(err, &invalid))

	for _, cfg := range []f.JobQueueConfig{
		{ContextType: "my jobs"},
		{SuccessTag: "job:\tdone"},
		{FailureTag: " job:failed"},
		{CursorContextType: "job cursor"},
	} {
		cfg.Credentials = f.Bearer("t")
		cfg.JournalID = uuid.New()
		_, err = NewJobQueue(nil, cfg)
		assert.True(stderrors.As(err, &invalid))
	}

	queue, err := NewJobQueue(nil, f.JobQueueConfig{Credentials: f.Bearer("t"), JournalID: uuid.New()})
	assert.Nil(err)
	assert.Equals(queue.Config().ContextType, f.DefaultJobContextType)
	assert.Equals(queue.Config().CursorContextType, f.DefaultJobCursorContext)
}

func TestJobQueue_ViewQuery(t *testing.T) {
	assert := test.NewAssertions(t)
	queue, err := NewJobQueue(nil, f.JobQueueConfig{Credentials: f.Bearer("t"), JournalID: uuid.New(), ContextType: "crawl"})
	assert.Nil(err)

	assert.Equals(queue.ViewQuery(f.JobsRemaining).String(), "context_type:crawl !tag:job:success !tag:job:failure")
	assert.Equals(queue.ViewQuery(f.JobsSuccess).String(), "context_type:crawl tag:job:success")
	assert.Equals(queue.ViewQuery(f.JobsFailure).String(), "context_type:crawl tag:job:failure")
}

func TestJobQueue_ListUnknownView(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("42")

	_, err := fx.queue.ListJobs(context.Background(), f.JobsQuery{View: "succes"})
	var invalid *errors.InvalidParametersError
	fx.assert.True(stderrors.As(err, &invalid))

	list, err := fx.queue.ListJobs(context.Background(), f.JobsQuery{})
	fx.assert.Nil(err)
	fx.assert.Len(list.Jobs, 1)
}

func TestJobQueue_CreateJobRequiresID(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	_, err := fx.queue.CreateJob(context.Background(), "  ", "T", "C")
	var invalid *errors.InvalidParametersError
	fx.assert.True(stderrors.As(err, &invalid))
}

func TestJobQueue_DuplicateIDConflicts(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("42")

	_, err := fx.queue.CreateJob(context.Background(), "42", "again", "C")
	fx.assert.True(errors.IsConflict(err))
	fx.assert.ContainsSubstring(errors.GetDetail(err), "42")

	remaining := fx.list(f.JobsRemaining, false)
	fx.assert.Len(remaining, 1)
	fx.assert.Equals(remaining[0].Title, "title 42")
}

func TestJobQueue_SameIDInAnotherContextType(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("42")

	other, err := NewJobQueue(fx.journal, f.JobQueueConfig{
		Credentials: f.Bearer(_jobsToken),
		JournalID:   fx.queue.Config().JournalID,
		ContextType: "report",
	})
	fx.assert.Nil(err)
	_, err = other.CreateJob(context.Background(), "42", "report 42", "C")
	fx.assert.Nil(err)

	fx.assert.Len(fx.list(f.JobsRemaining, false), 1)
	list, err := other.RemainingJobs(context.Background(), false, 10, 0)
	fx.assert.Nil(err)
	fx.assert.Len(list.Jobs, 1)
	fx.assert.Equals(list.Jobs[0].Title, "report 42")
}

func TestJobQueue_ViewsPartitionJobs(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("a", "b", "c")

	_, err := fx.queue.CompleteJob(context.Background(), fx.find(f.JobsRemaining, "a").ID)
	fx.assert.Nil(err)
	_, err = fx.queue.FailJob(context.Background(), fx.find(f.JobsRemaining, "b").ID)
	fx.assert.Nil(err)

	fx.assert.ConsistOf(titles(fx.list(f.JobsRemaining, false)), "title c")
	fx.assert.ConsistOf(titles(fx.list(f.JobsSuccess, false)), "title a")
	fx.assert.ConsistOf(titles(fx.list(f.JobsFailure, false)), "title b")
}

func TestJobQueue_ListingIsFIFO(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("first", "second", "third")

	jobs := fx.list(f.JobsRemaining, false)
	fx.assert.Equals(titles(jobs), []string{"title first", "title second", "title third"})

	page, err := fx.queue.RemainingJobs(context.Background(), false, 2, 0)
	fx.assert.Nil(err)
	fx.assert.Equals(page.TotalResults, 3)
	fx.assert.Equals(titles(page.Jobs), []string{"title first", "title second"})
	fx.assert.Equals(*page.NextOffset, 2)

	page, err = fx.queue.RemainingJobs(context.Background(), false, 2, *page.NextOffset)
	fx.assert.Nil(err)
	fx.assert.Equals(titles(page.Jobs), []string{"title third"})
	fx.assert.IsNil(page.NextOffset)
}

func TestJobQueue_CompleteIsIdempotent(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("42")
	job := fx.find(f.JobsRemaining, "42")

	first, err := fx.queue.CompleteJob(context.Background(), job.ID)
	fx.assert.Nil(err)
	second, err := fx.queue.CompleteJob(context.Background(), job.ID)
	fx.assert.Nil(err)
	fx.assert.ConsistOf(second, first)
	fx.assert.ConsistOf(second, "job", "job:42", "job:success")

	fx.assert.Len(fx.list(f.JobsRemaining, false), 0)
	fx.assert.Len(fx.list(f.JobsSuccess, false), 1)
	fx.assert.Equals(testutil.ToFloat64(fx.metrics.Jobs.WithLabelValues("job", JobEventCompleted)), float64(2))
}

func TestJobQueue_CompletedThenFailedCarriesBothTags(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("42")
	job := fx.find(f.JobsRemaining, "42")

	_, err := fx.queue.CompleteJob(context.Background(), job.ID)
	fx.assert.Nil(err)
	tags, err := fx.queue.FailJob(context.Background(), job.ID)
	fx.assert.Nil(err)
	fx.assert.Contains(tags, "job:success")
	fx.assert.Contains(tags, "job:failure")

	fx.assert.Len(fx.list(f.JobsRemaining, false), 0)
	fx.assert.Len(fx.list(f.JobsSuccess, false), 1)
	fx.assert.Len(fx.list(f.JobsFailure, false), 1)
}

func TestJobQueue_MarkUnknownJob(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	_, err := fx.queue.CompleteJob(context.Background(), uuid.New())
	fx.assert.True(errors.IsNotFound(err))
}

func TestJobQueue_CursorScopesRemaining(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})

	cursor, err := fx.queue.Cursor(context.Background())
	fx.assert.Nil(err)
	fx.assert.True(cursor == nil)

	fx.enqueue("before")
	at := fx.clock.Now()
	fx.enqueue("after")

	// without any cursor there is no lower bound
	fx.assert.Len(fx.list(f.JobsRemaining, true), 2)

	_, err = fx.queue.UpdateCursor(context.Background(), at)
	fx.assert.Nil(err)

	cursor, err = fx.queue.Cursor(context.Background())
	fx.assert.Nil(err)
	fx.assert.Equals(cursor.Title, "cursor:job_cursor")
	created, err := cursor.CreatedTime()
	fx.assert.Nil(err)
	fx.assert.True(created.Equal(at))

	fx.assert.ConsistOf(titles(fx.list(f.JobsRemaining, true)), "title after")
	fx.assert.Len(fx.list(f.JobsRemaining, false), 2)
}

func TestJobQueue_LatestCursorWins(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("a", "b", "c")
	jobs := fx.list(f.JobsRemaining, false)

	first, err := jobs[0].CreatedTime()
	fx.assert.Nil(err)
	second, err := jobs[1].CreatedTime()
	fx.assert.Nil(err)

	_, err = fx.queue.UpdateCursor(context.Background(), second)
	fx.assert.Nil(err)
	_, err = fx.queue.UpdateCursor(context.Background(), first)
	fx.assert.Nil(err)

	// cursors are ordered by their created_at, not by when they were written
	fx.assert.ConsistOf(titles(fx.list(f.JobsRemaining, true)), "title c")
}

func TestJobQueue_UpdateCursorDefaultsToNow(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	now := fx.clock.Advance(time.Hour)

	entry, err := fx.queue.UpdateCursor(context.Background(), time.Time{})
	fx.assert.Nil(err)
	fx.assert.True(entry.CreatedAt.Equal(now))
	fx.assert.ConsistOf(entry.Tags, "cursor:job_cursor")
	fx.assert.Equals(*entry.ContextType, "job_cursor")
}

func TestJobQueue_CursorsAreScopedByContextType(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{CursorContextType: "worker_a"})
	fx.enqueue("a")

	other, err := NewJobQueue(fx.journal, f.JobQueueConfig{
		Credentials:       f.Bearer(_jobsToken),
		JournalID:         fx.queue.Config().JournalID,
		CursorContextType: "worker_b",
	})
	fx.assert.Nil(err)
	_, err = fx.queue.UpdateCursor(context.Background(), fx.clock.Advance(time.Second))
	fx.assert.Nil(err)

	fx.assert.Len(fx.list(f.JobsRemaining, true), 0)
	list, err := other.RemainingJobs(context.Background(), true, 10, 0)
	fx.assert.Nil(err)
	fx.assert.Len(list.Jobs, 1)
}

func TestJobQueue_ProcessRemaining(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("ok-1", "boom", "ok-2")

	var seen []string
	summary, err := fx.queue.ProcessRemaining(context.Background(), 10, func(ctx context.Context, job f.Job) error {
		seen = append(seen, job.Title)
		if job.HasTag("job:boom") {
			return stderrors.New("boom")
		}
		return nil
	})
	fx.assert.Nil(err)
	fx.assert.Equals(seen, []string{"title ok-1", "title boom", "title ok-2"})
	fx.assert.Equals(summary.Processed, 3)
	fx.assert.Len(summary.Succeeded, 2)
	fx.assert.Len(summary.Failed, 1)

	fx.assert.Len(fx.list(f.JobsRemaining, false), 0)
	fx.assert.ConsistOf(titles(fx.list(f.JobsFailure, false)), "title boom")

	cursor, err := fx.queue.Cursor(context.Background())
	fx.assert.Nil(err)
	fx.assert.True(cursor == nil)
}

func TestJobQueue_ProcessRemainingStopsOnCancel(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	fx.enqueue("a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	summary, err := fx.queue.ProcessRemaining(ctx, 10, func(ctx context.Context, job f.Job) error {
		cancel()
		return nil
	})
	fx.assert.Error(err)
	fx.assert.Equals(summary.Processed, 1)
	fx.assert.Contains(titles(fx.list(f.JobsRemaining, false)), "title b")
}

func TestJobQueue_EndToEndComplete(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	ctx := context.Background()

	entry, err := fx.queue.CreateJob(ctx, "42", "T", "C")
	fx.assert.Nil(err)
	fx.assert.ConsistOf(entry.Tags, "job", "job:42")
	fx.assert.Equals(*entry.ContextID, "42")

	remaining := fx.list(f.JobsRemaining, false)
	fx.assert.Len(remaining, 1)
	fx.assert.Equals(remaining[0].ID, entry.ID)
	fx.assert.Equals(*remaining[0].Content, "C")

	content, err := fx.journal.GetEntryContent(ctx, f.Bearer(_jobsToken), fx.queue.Config().JournalID, remaining[0].ID)
	fx.assert.Nil(err)
	fx.assert.Equals(content.Content, "C")

	_, err = fx.queue.CompleteJob(ctx, remaining[0].ID)
	fx.assert.Nil(err)
	fx.assert.Len(fx.list(f.JobsRemaining, false), 0)
	success := fx.list(f.JobsSuccess, false)
	fx.assert.Len(success, 1)
	fx.assert.Equals(success[0].ID, entry.ID)
}

func TestJobQueue_EndToEndCursor(t *testing.T) {
	fx := newJobsFixture(t, f.JobQueueConfig{})
	ctx := context.Background()

	fx.enqueue("old")
	at := fx.clock.Advance(time.Second)
	_, err := fx.queue.CreateJob(ctx, "same-instant", "title same-instant", "C")
	fx.assert.Nil(err)

	_, err = fx.queue.UpdateCursor(ctx, at)
	fx.assert.Nil(err)

	fx.clock.Advance(time.Second)
	_, err = fx.queue.CreateJob(ctx, "next", "title next", "C")
	fx.assert.Nil(err)

	fx.assert.Equals(titles(fx.list(f.JobsRemaining, true)), []string{"title next"})
	fx.assert.Equals(testutil.ToFloat64(fx.metrics.Jobs.WithLabelValues("job", JobEventCreated)), float64(3))
}
