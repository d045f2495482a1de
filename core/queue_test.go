package f

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseJobView(t *testing.T) {
	view, err := ParseJobView("")
	assert.Equal(t, err, nil)
	assert.Equal(t, view, JobsRemaining)

	view, err = ParseJobView("failure")
	assert.Equal(t, err, nil)
	assert.Equal(t, view, JobsFailure)

	_, err = ParseJobView("pending")
	assert.NotEqual(t, err, nil)
}

func TestJobQueueConfig_WithDefaults(t *testing.T) {
	cfg := JobQueueConfig{SuccessTag: "done"}.WithDefaults()
	assert.Equal(t, cfg.ContextType, "job")
	assert.Equal(t, cfg.SuccessTag, "done")
	assert.Equal(t, cfg.FailureTag, "job:failure")
	assert.Equal(t, cfg.CursorContextType, "job_cursor")
}

func TestJobQueueConfig_Tags(t *testing.T) {
	cfg := JobQueueConfig{ContextType: "crawl", CursorContextType: "crawler"}
	assert.Equal(t, cfg.JobTag("42"), "crawl:42")
	assert.Equal(t, cfg.CursorTag(), "cursor:crawler")
}
