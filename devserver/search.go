package devserver

import (
	"fmt"
	"strings"
	"time"

	"github.com/soffa-projects/bugout-go/h"
)

// predicate is one parsed search term.
type predicate func(e entry) bool

// parseQuery compiles the space separated terms of q into a conjunction.
//
//	tag:T  context_type:X  context_id:X  context_url:X
//	created_at:>TS  created_at:>=TS  created_at:<TS  created_at:<=TS  (same for updated_at)
//	!term negates, anything else is matched against title and content.
func parseQuery(q string) ([]predicate, error) {
	var predicates []predicate
	for _, term := range strings.Fields(q) {
		p, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

func parseTerm(term string) (predicate, error) {
	if strings.HasPrefix(term, "!") && len(term) > 1 {
		inner, err := parseTerm(term[1:])
		if err != nil {
			return nil, err
		}
		return func(e entry) bool { return !inner(e) }, nil
	}
	key, value, found := strings.Cut(term, ":")
	if !found {
		return textPredicate(term), nil
	}
	switch key {
	case "tag":
		return func(e entry) bool { return h.ContainsString(e.Tags, value) }, nil
	case "context_type":
		return func(e entry) bool { return e.ContextType == value }, nil
	case "context_id":
		return func(e entry) bool { return e.ContextID == value }, nil
	case "context_url":
		return func(e entry) bool { return e.ContextURL == value }, nil
	case "created_at":
		return timePredicate(value, func(e entry) time.Time { return e.CreatedAt })
	case "updated_at":
		return timePredicate(value, func(e entry) time.Time { return e.UpdatedAt })
	}
	return textPredicate(term), nil
}

func textPredicate(word string) predicate {
	word = strings.ToLower(word)
	return func(e entry) bool {
		return strings.Contains(strings.ToLower(e.Title), word) ||
			strings.Contains(strings.ToLower(e.Content), word)
	}
}

func timePredicate(value string, field func(e entry) time.Time) (predicate, error) {
	var op string
	for _, candidate := range []string{">=", "<=", ">", "<"} {
		if strings.HasPrefix(value, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return nil, fmt.Errorf("unsupported time comparison %q, expected one of >, >=, <, <=", value)
	}
	bound, err := h.ParseTimestamp(strings.TrimPrefix(value, op))
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp in %q: %w", value, err)
	}
	return func(e entry) bool {
		t := field(e)
		switch op {
		case ">":
			return t.After(bound)
		case ">=":
			return !t.Before(bound)
		case "<":
			return t.Before(bound)
		default:
			return !t.After(bound)
		}
	}, nil
}

func matches(e entry, predicates []predicate) bool {
	for _, p := range predicates {
		if !p(e) {
			return false
		}
	}
	return true
}
