package test

import (
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
)

func TestAssertions_Collections(t *testing.T) {
	assert := NewAssertions(t)

	tags := []string{"job", "job:42"}
	assert.Len(tags, 2)
	assert.Contains(tags, "job:42")
	assert.NotContains(tags, "job:success")
	assert.ConsistOf(tags, "job:42", "job")
	assert.NotEqual("job:success", "job:failure")
}

func TestAssertions_Strings(t *testing.T) {
	assert := NewAssertions(t)

	assert.NotEmpty(" ")
	assert.HasPrefix("created_at:>2024-01-01T00:00:00", "created_at:>")
	assert.ContainsSubstring("context_type:job !tag:job:success", "!tag:")
	assert.MatchJson(`{"tags":["a"],"title":"T"}`, `{"title":"T","tags":["a"]}`)
}

func TestStubServer_RecordsRequests(t *testing.T) {
	assert := NewAssertions(t)
	stub := NewStubServer(t)
	stub.OnJSON("POST", "/journals/j/entries", http.StatusOK, map[string]string{"id": "e"})

	resp, err := resty.New().R().
		SetHeader("Authorization", "Bearer t").
		SetBody(map[string]any{"title": "T"}).
		Post(stub.URL + "/journals/j/entries?x=1")
	assert.Nil(err)
	assert.Equals(resp.StatusCode(), http.StatusOK)
	assert.MatchJson(resp.String(), `{"id":"e"}`)

	last := stub.Last()
	assert.Equals(last.Method, "POST")
	assert.Equals(last.Path, "/journals/j/entries")
	assert.Equals(last.Query.Get("x"), "1")
	assert.Equals(last.Header.Get("Authorization"), "Bearer t")
	stub.LastJSON().Match(`{"title":"T"}`)
}

func TestStubServer_FormAndUnknownRoute(t *testing.T) {
	assert := NewAssertions(t)
	stub := NewStubServer(t)

	resp, err := resty.New().R().
		SetFormData(map[string]string{"username": "neo"}).
		Post(stub.URL + "/user")
	assert.Nil(err)
	assert.Equals(resp.StatusCode(), http.StatusNotFound)
	assert.Equals(stub.Last().Form.Get("username"), "neo")
	assert.Len(stub.Requests(), 1)
}
