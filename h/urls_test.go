package h

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestJoinUrl(t *testing.T) {
	assert.Equal(t, JoinUrl("https://spire.bugout.dev", "ping"), "https://spire.bugout.dev/ping")
	assert.Equal(t, JoinUrl("https://spire.bugout.dev/", "/journals/x/entries"), "https://spire.bugout.dev/journals/x/entries")
	assert.Equal(t, JoinUrl("https://auth.bugout.dev", "resources/"), "https://auth.bugout.dev/resources/")
	assert.Equal(t, JoinUrl("https://auth.bugout.dev/", ""), "https://auth.bugout.dev")
}

func TestIsHttpUrl(t *testing.T) {
	assert.Equal(t, IsHttpUrl("https://spire.bugout.dev"), true)
	assert.Equal(t, IsHttpUrl("http://127.0.0.1:7475"), true)
	assert.Equal(t, IsHttpUrl("spire.bugout.dev"), false)
	assert.Equal(t, IsHttpUrl("ftp://spire.bugout.dev"), false)
	assert.Equal(t, IsHttpUrl(""), false)
}

func TestLastPathSegment(t *testing.T) {
	id, err := LastPathSegment("https://spire.bugout.dev/journals/2f0d/entries/9d6c7a3e-5d33-4cf8-a1c4-3f2f9e3a6b10")
	assert.Equal(t, err, nil)
	assert.Equal(t, id, "9d6c7a3e-5d33-4cf8-a1c4-3f2f9e3a6b10")

	id, err = LastPathSegment("https://spire.bugout.dev/journals/2f0d/entries/abc/")
	assert.Equal(t, err, nil)
	assert.Equal(t, id, "abc")

	_, err = LastPathSegment("https://spire.bugout.dev")
	assert.NotEqual(t, err, nil)
}

func TestParseUrl_Query(t *testing.T) {
	u, err := ParseUrl("https://spire.bugout.dev/journals/x/search?q=tag:a&limit=10")
	assert.Equal(t, err, nil)
	assert.Equal(t, u.Host, "spire.bugout.dev")
	assert.Equal(t, u.HasQueryParam("q"), true)
	assert.Equal(t, u.Query("limit"), "10")
}
