package devserver

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func searchEntry() entry {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return entry{
		Title:       "Resize image",
		Content:     "bucket=avatars key=42.png",
		Tags:        []string{"job", "job:42"},
		ContextType: "job",
		ContextID:   "42",
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Minute),
	}
}

func match(t *testing.T, q string) bool {
	predicates, err := parseQuery(q)
	assert.Equal(t, err, nil)
	return matches(searchEntry(), predicates)
}

func TestParseQuery_Tags(t *testing.T) {
	assert.Equal(t, match(t, "tag:job"), true)
	assert.Equal(t, match(t, "tag:job:42"), true)
	assert.Equal(t, match(t, "tag:job:success"), false)
	assert.Equal(t, match(t, "!tag:job:success"), true)
	assert.Equal(t, match(t, "context_type:job !tag:job:success !tag:job:failure"), true)
	assert.Equal(t, match(t, "context_type:job tag:job:success"), false)
}

func TestParseQuery_Context(t *testing.T) {
	assert.Equal(t, match(t, "context_type:job context_id:42"), true)
	assert.Equal(t, match(t, "context_type:job_cursor"), false)
	assert.Equal(t, match(t, "!context_id:42"), false)
}

func TestParseQuery_Timestamps(t *testing.T) {
	assert.Equal(t, match(t, "created_at:>2024-01-01T09:59:59Z"), true)
	assert.Equal(t, match(t, "created_at:>2024-01-01T10:00:00Z"), false)
	assert.Equal(t, match(t, "created_at:>=2024-01-01T10:00:00Z"), true)
	assert.Equal(t, match(t, "created_at:<2024-01-01T10:00:00Z"), false)
	assert.Equal(t, match(t, "created_at:<=2024-01-01T10:00:00Z"), true)
	assert.Equal(t, match(t, "created_at:>2024-01-01T10:00:00.000000+00:00"), false)
	assert.Equal(t, match(t, "updated_at:>2024-01-01T10:00:30Z"), true)
}

func TestParseQuery_Text(t *testing.T) {
	assert.Equal(t, match(t, "resize"), true)
	assert.Equal(t, match(t, "AVATARS"), true)
	assert.Equal(t, match(t, "thumbnail"), false)
	assert.Equal(t, match(t, "!thumbnail"), true)
	assert.Equal(t, match(t, ""), true)
}

func TestParseQuery_Invalid(t *testing.T) {
	_, err := parseQuery("created_at:2024-01-01")
	assert.NotEqual(t, err, nil)

	_, err = parseQuery("created_at:>yesterday-ish")
	assert.NotEqual(t, err, nil)
}
