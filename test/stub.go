package test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/soffa-projects/bugout-go/h"
)

// RecordedRequest is what the stub server saw of one request.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
	Form   url.Values
}

type stubResponse struct {
	status      int
	contentType string
	body        string
}

// StubServer answers canned responses keyed by "METHOD /path" and records
// every request it receives. Unknown routes answer 404 with a JSON detail.
type StubServer struct {
	URL       string
	server    *httptest.Server
	assert    Assertions
	mu        sync.Mutex
	requests  []RecordedRequest
	responses map[string]stubResponse
}

func NewStubServer(t *testing.T) *StubServer {
	s := &StubServer{assert: NewAssertions(t), responses: map[string]stubResponse{}}
	e := echo.New()
	e.HideBanner = true
	e.Any("/*", s.handle)
	s.server = httptest.NewServer(e)
	s.URL = s.server.URL
	t.Cleanup(s.server.Close)
	return s
}

func stubKey(method string, path string) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(method), path)
}

func (s *StubServer) handle(c echo.Context) error {
	req := c.Request()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	recorded := RecordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   string(body),
	}
	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		recorded.Form, _ = url.ParseQuery(string(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	resp, ok := s.responses[stubKey(req.Method, req.URL.Path)]
	s.mu.Unlock()

	if !ok {
		return c.JSONBlob(http.StatusNotFound, []byte(`{"detail":"no stub for this route"}`))
	}
	return c.Blob(resp.status, resp.contentType, []byte(resp.body))
}

// OnJSON registers a JSON response; body is either raw JSON text or a value to marshal.
func (s *StubServer) OnJSON(method string, path string, status int, body any) *StubServer {
	text, ok := body.(string)
	if !ok {
		encoded, err := h.ToJsonString(body)
		s.assert.Nil(err)
		text = encoded
	}
	return s.On(method, path, status, echo.MIMEApplicationJSON, text)
}

func (s *StubServer) On(method string, path string, status int, contentType string, body string) *StubServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[stubKey(method, path)] = stubResponse{status: status, contentType: contentType, body: body}
	return s
}

// Close stops the server; further calls fail with a connection error.
func (s *StubServer) Close() {
	s.server.Close()
}

func (s *StubServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest{}, s.requests...)
}

func (s *StubServer) Last() RecordedRequest {
	requests := s.Requests()
	s.assert.True(len(requests) > 0, "no request recorded")
	return requests[len(requests)-1]
}

func (s *StubServer) LastJSON() *JsonMatcher {
	return NewJsonMatcher(s.assert, s.Last().Body)
}
