package h

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestMergeTags(t *testing.T) {
	tags := MergeTags([]string{"job", "job:42"}, "job:success", "job", " ")
	assert.Equal(t, tags, []string{"job", "job:42", "job:success"})

	assert.Equal(t, MergeTags(nil), []string{})
}

func TestMergeTags_DoesNotMutateInput(t *testing.T) {
	input := make([]string, 1, 4)
	input[0] = "a"
	_ = MergeTags(input, "b")
	assert.Equal(t, input, []string{"a"})
}

func TestRemoveTag(t *testing.T) {
	assert.Equal(t, RemoveTag([]string{"a", "b", "a"}, "a"), []string{"b"})
	assert.Equal(t, RemoveTag(nil, "a"), []string{})
}

func TestContainsString(t *testing.T) {
	assert.Equal(t, ContainsString([]string{"job:success"}, "job:success"), true)
	assert.Equal(t, ContainsString([]string{"job:success"}, "job:failure"), false)
	assert.Equal(t, ContainsString(nil, "x"), false)
	assert.Equal(t, ContainsString([]string{""}, ""), false)
}

func TestSplitCsv(t *testing.T) {
	assert.Equal(t, SplitCsv("a, b,,c "), []string{"a", "b", "c"})
	assert.Equal(t, len(SplitCsv("")), 0)
}

func TestPtrStr(t *testing.T) {
	assert.Equal(t, PtrStr(nil), "")
	assert.Equal(t, PtrStr(StrPtr("note")), "note")
	assert.Equal(t, IsEmpty(""), true)
	assert.Equal(t, IsNotEmpty("x"), true)
}
