package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/log"
)

const (
	ServiceBrood = "brood"
	ServiceSpire = "spire"
)

// Call describes one request against a Bugout service. Path is relative to
// the service base url. Form and Body are mutually exclusive.
type Call struct {
	Method  string
	Path    string
	Creds   *f.Credentials
	Query   url.Values
	Form    map[string]string
	Body    any
	Headers map[string]string
	// Result receives the decoded JSON body; nil discards it.
	Result any
}

// Transport issues single requests to one Bugout service. It holds no state
// besides its configuration and is safe for concurrent use.
type Transport struct {
	service string
	baseURL string
	timeout time.Duration
	client  *resty.Client
	metrics *Metrics
}

func NewTransport(service string, baseURL string, timeout time.Duration, metrics *Metrics) (*Transport, error) {
	if !h.IsHttpUrl(baseURL) {
		return nil, errors.InvalidParameters("invalid %s url specified: %q", service, baseURL)
	}
	if timeout <= 0 {
		timeout = f.DefaultTimeoutSeconds * time.Second
	}
	client := resty.New()
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	// list_scopes sends its filter as a JSON body on GET.
	client.SetAllowGetMethodPayload(true)
	client.SetHeader("Accept", "application/json")
	return &Transport{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  client,
		metrics: metrics,
	}, nil
}

func (t *Transport) Service() string {
	return t.service
}

func (t *Transport) BaseURL() string {
	return t.baseURL
}

func (t *Transport) URL(path string) string {
	return h.JoinUrl(t.baseURL, path)
}

// Do sends call and decodes a 2xx body into call.Result.
//
// Failures are mapped to the errors package: no response at all gives a
// *errors.NetworkError, a non-2xx status gives a *errors.ResponseError and a
// body that cannot be decoded gives a *errors.UnexpectedResponseError.
func (t *Transport) Do(ctx context.Context, call Call, opts ...f.CallOptions) error {
	options := f.MergeCallOptions(opts...)
	timeout := t.timeout
	if options.Timeout > 0 {
		timeout = options.Timeout
	}
	if call.Creds != nil {
		if err := call.Creds.Validate(); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := t.URL(call.Path)
	req := t.client.R().SetContext(ctx)
	if call.Creds != nil && !call.Creds.IsZero() {
		req.SetHeader("Authorization", call.Creds.Header())
	}
	for key, value := range call.Headers {
		req.SetHeader(key, value)
	}
	for key, value := range options.Headers {
		req.SetHeader(key, value)
	}
	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}
	if call.Form != nil {
		req.SetFormData(call.Form)
	} else if call.Body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(call.Body)
	}

	started := time.Now()
	resp, err := req.Execute(call.Method, target)
	elapsed := time.Since(started)
	if err != nil {
		t.metrics.observeRequest(t.service, call.Method, errors.NetworkErrorStatus, elapsed)
		log.Debug("[%s] %s %s failed after %s: %v", t.service, call.Method, target, elapsed, err)
		return errors.Network(err)
	}

	status := resp.StatusCode()
	t.metrics.observeRequest(t.service, call.Method, status, elapsed)
	log.Debug("[%s] %s %s -> %d (%s)", t.service, call.Method, target, status, elapsed)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return errors.Response(status, responseDetail(resp))
	}
	if call.Result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), call.Result); err != nil {
		return errors.Unexpected("could not decode response of "+call.Method+" "+target, err)
	}
	return nil
}

// Ping calls the service health endpoint.
func (t *Transport) Ping(ctx context.Context, opts ...f.CallOptions) (map[string]string, error) {
	var result map[string]string
	err := t.Do(ctx, Call{Method: f.MethodGet, Path: "ping", Result: &result}, opts...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// responseDetail extracts the "detail" field of a JSON error body, falling
// back to the raw text for other content types.
func responseDetail(resp *resty.Response) string {
	body := resp.String()
	contentType := resp.Header().Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if detail, ok := h.NewJsonValue(body).Text("detail"); ok {
			return detail
		}
	}
	return body
}

func optional(creds *f.Credentials) *f.Credentials {
	if creds == nil || creds.IsZero() {
		return nil
	}
	return creds
}
