package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	matcher "github.com/panta/go-json-matcher"
	"github.com/soffa-projects/bugout-go/h"
)

// RestClient drives an HTTP handler under test, typically the dev server.
type RestClient struct {
	client *resty.Client
	assert Assertions
	auth   string
}

type HttpRes struct {
	resp   *resty.Response
	err    error
	assert Assertions
}

type HttpReq struct {
	Body    any
	Headers map[string]string
	Query   map[string]string
	// Auth is the full Authorization header value, e.g. "Bearer <token>".
	Auth   string
	Result any
}

func NewRestClient(t *testing.T, baseUrl string) *RestClient {
	r := resty.New()
	r.SetRedirectPolicy(resty.NoRedirectPolicy())
	r.SetAllowGetMethodPayload(true)
	r.SetBaseURL(baseUrl)
	return &RestClient{client: r, assert: NewAssertions(t)}
}

func (c *RestClient) SetAuth(header string) *RestClient {
	c.auth = header
	return c
}

func (c *RestClient) Get(path string, opts ...HttpReq) HttpRes {
	return c.invoke(http.MethodGet, path, opts...)
}

func (c *RestClient) Post(path string, opts ...HttpReq) HttpRes {
	return c.invoke(http.MethodPost, path, opts...)
}

func (c *RestClient) Put(path string, opts ...HttpReq) HttpRes {
	return c.invoke(http.MethodPut, path, opts...)
}

func (c *RestClient) Delete(path string, opts ...HttpReq) HttpRes {
	return c.invoke(http.MethodDelete, path, opts...)
}

func (c *RestClient) invoke(method string, path string, opts ...HttpReq) HttpRes {
	q := c.client.R()
	auth := c.auth
	for _, opt := range opts {
		if opt.Body != nil {
			q = q.SetBody(opt.Body)
		}
		if opt.Auth != "" {
			auth = opt.Auth
		}
		if opt.Result != nil {
			q = q.SetResult(opt.Result)
		}
		for key, value := range opt.Headers {
			q = q.SetHeader(key, value)
		}
		if opt.Query != nil {
			q = q.SetQueryParams(opt.Query)
		}
	}
	if auth != "" {
		q = q.SetHeader("Authorization", auth)
	}
	resp, err := q.Execute(method, path)
	c.assert.Nil(err)
	return HttpRes{
		resp:   resp,
		err:    err,
		assert: c.assert,
	}
}

func (r HttpRes) IsOk() HttpRes {
	r.assert.Equals(r.resp.StatusCode(), http.StatusOK, r.resp.String())
	return r
}

func (r HttpRes) Is(status int) HttpRes {
	r.assert.Equals(r.resp.StatusCode(), status, r.resp.String())
	return r
}

func (r HttpRes) IsConflict() HttpRes {
	return r.Is(http.StatusConflict)
}

func (r HttpRes) IsBadRequest() HttpRes {
	return r.Is(http.StatusBadRequest)
}

func (r HttpRes) IsNotFound() HttpRes {
	return r.Is(http.StatusNotFound)
}

func (r HttpRes) IsUnauthorized() HttpRes {
	return r.Is(http.StatusUnauthorized)
}

func (r HttpRes) Result() []byte {
	return r.resp.Body()
}

func (r HttpRes) JSONValue() h.JsonValue {
	return h.NewJsonValue(string(r.Result()))
}

func (r HttpRes) JSON() *JsonMatcher {
	return NewJsonMatcher(r.assert, string(r.Result()))
}

type JsonMatcher struct {
	assert Assertions
	value  string
}

func NewJsonMatcher(assert Assertions, value string) *JsonMatcher {
	var data any
	assert.Nil(json.Unmarshal([]byte(value), &data), "failed to unmarshal json: "+value)
	return &JsonMatcher{assert: assert, value: value}
}

func (j JsonMatcher) Match(pattern string) JsonMatcher {
	j.assert.MatchJson(j.value, pattern)
	return j
}

// MatchShape compares against a go-json-matcher pattern, where values such as
// "#string" or "#array" match any value of that kind.
func (j JsonMatcher) MatchShape(pattern string) JsonMatcher {
	match, err := matcher.JSONStringMatches(j.value, pattern)
	j.assert.Nil(err)
	j.assert.True(match, j.value)
	return j
}

func (j JsonMatcher) Value() h.JsonValue {
	return h.NewJsonValue(j.value)
}
