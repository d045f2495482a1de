package f

import (
	"fmt"
	"strings"
	"time"

	"github.com/soffa-projects/bugout-go/h"
)

// Query builds a journal search expression: space separated "key:value"
// terms, "!" negates a term.
type Query struct {
	terms []string
}

func NewQuery(terms ...string) *Query {
	q := &Query{}
	for _, term := range terms {
		q.Raw(term)
	}
	return q
}

func (q *Query) Raw(term string) *Query {
	if term = strings.TrimSpace(term); term != "" {
		q.terms = append(q.terms, term)
	}
	return q
}

func (q *Query) Eq(key string, value string) *Query {
	return q.Raw(fmt.Sprintf("%s:%s", key, value))
}

func (q *Query) Not(key string, value string) *Query {
	return q.Raw(fmt.Sprintf("!%s:%s", key, value))
}

func (q *Query) Tag(tag string) *Query {
	return q.Eq("tag", tag)
}

func (q *Query) NotTag(tag string) *Query {
	return q.Not("tag", tag)
}

func (q *Query) ContextType(contextType string) *Query {
	return q.Eq("context_type", contextType)
}

// CreatedAfter keeps entries created strictly after ts. ts is passed through
// NormalizeTimestamp so server-rendered values can be reused verbatim.
func (q *Query) CreatedAfter(ts string) *Query {
	return q.Raw(fmt.Sprintf("created_at:>%s", h.NormalizeTimestamp(ts)))
}

func (q *Query) CreatedBefore(ts string) *Query {
	return q.Raw(fmt.Sprintf("created_at:<%s", h.NormalizeTimestamp(ts)))
}

func (q *Query) CreatedAfterTime(t time.Time) *Query {
	return q.CreatedAfter(h.FormatTimestamp(t))
}

func (q *Query) Text(words string) *Query {
	return q.Raw(words)
}

func (q *Query) Terms() []string {
	return append([]string{}, q.terms...)
}

func (q *Query) String() string {
	return strings.Join(q.terms, " ")
}
