package h

import (
	"strings"

	"github.com/thoas/go-funk"
)

func IsEmpty(s interface{}) bool {
	return funk.IsEmpty(s)
}

func IsNotEmpty(s interface{}) bool {
	return !funk.IsEmpty(s)
}

func StrPtr(s string) *string {
	return &s
}

func PtrStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func EmptyIfNull[T any](value []T) []T {
	if value == nil {
		return []T{}
	}
	return value
}

func ContainsString(array []string, value string) bool {
	if len(array) == 0 || value == "" {
		return false
	}
	return funk.ContainsString(array, value)
}

// MergeTags appends extra to tags, dropping blanks and duplicates while
// keeping first-seen order.
func MergeTags(tags []string, extra ...string) []string {
	merged := make([]string, 0, len(tags)+len(extra))
	for _, tag := range append(append([]string{}, tags...), extra...) {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			merged = append(merged, tag)
		}
	}
	return funk.UniqString(merged)
}

// RemoveTag returns tags without any occurrence of tag.
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// SplitCsv splits a comma separated flag value, ignoring blanks.
func SplitCsv(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
