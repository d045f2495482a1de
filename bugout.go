// Package bugout is a typed client for the Bugout Brood (identity) and Spire
// (journals) APIs, plus a job queue built on top of a journal.
//
//	client, err := bugout.New(config.Default())
//	user, err := client.GetUser(ctx, f.Bearer(token))
//
// Every operation of the area clients is available directly on Client.
package bugout

import (
	"context"
	"reflect"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/soffa-projects/bugout-go/adapters"
	"github.com/soffa-projects/bugout-go/config"
	f "github.com/soffa-projects/bugout-go/core"
)

// Client bundles one client per API area. It is built once from immutable
// settings and is safe for concurrent use.
type Client struct {
	*adapters.UserClient
	*adapters.GroupClient
	*adapters.ResourceClient
	*adapters.JournalClient
	*adapters.HumbugClient

	settings config.Settings
	brood    *adapters.Transport
	spire    *adapters.Transport
	metrics  *adapters.Metrics
}

type options struct {
	registerer prometheus.Registerer
}

type Option func(*options)

// WithMetrics registers request and job counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

func New(settings config.Settings, opts ...Option) (*Client, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var metrics *adapters.Metrics
	if o.registerer != nil {
		metrics = adapters.NewMetrics(o.registerer)
	}
	brood, err := adapters.NewTransport(adapters.ServiceBrood, settings.BroodURL, settings.Timeout(), metrics)
	if err != nil {
		return nil, err
	}
	spire, err := adapters.NewTransport(adapters.ServiceSpire, settings.SpireURL, settings.Timeout(), metrics)
	if err != nil {
		return nil, err
	}
	return &Client{
		UserClient:     adapters.NewUserClient(brood, settings.ApplicationIDHeader),
		GroupClient:    adapters.NewGroupClient(brood),
		ResourceClient: adapters.NewResourceClient(brood),
		JournalClient:  adapters.NewJournalClient(spire),
		HumbugClient:   adapters.NewHumbugClient(spire),
		settings:       settings,
		brood:          brood,
		spire:          spire,
		metrics:        metrics,
	}, nil
}

// NewFromEnv is New with settings read from the BUGOUT_* environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(settings, opts...)
}

func (c *Client) Settings() config.Settings {
	return c.settings
}

// Metrics is nil unless the client was built WithMetrics.
func (c *Client) Metrics() *adapters.Metrics {
	return c.metrics
}

func (c *Client) BroodURL() string {
	return c.brood.BaseURL()
}

func (c *Client) SpireURL() string {
	return c.spire.BaseURL()
}

func (c *Client) BroodPing(ctx context.Context, opts ...f.CallOptions) (map[string]string, error) {
	return c.brood.Ping(ctx, opts...)
}

func (c *Client) SpirePing(ctx context.Context, opts ...f.CallOptions) (map[string]string, error) {
	return c.spire.Ping(ctx, opts...)
}

// Health pings both services. It never fails; a failing service is reported
// DOWN with its error message.
func (c *Client) Health(ctx context.Context, opts ...f.CallOptions) f.HealthCheckResponse {
	return f.NewHealthCheck("bugout").
		Add(ctx, adapters.ServiceBrood, c.BroodPing, opts...).
		Add(ctx, adapters.ServiceSpire, c.SpirePing, opts...).
		Build()
}

// NewJobQueue binds a job queue to one journal of this client's Spire.
func (c *Client) NewJobQueue(cfg f.JobQueueConfig, opts ...adapters.JobQueueOption) (*adapters.JobQueueClient, error) {
	if c.metrics != nil {
		opts = append([]adapters.JobQueueOption{adapters.WithJobMetrics(c.metrics)}, opts...)
	}
	return adapters.NewJobQueue(c.JournalClient, cfg, opts...)
}

// Methods lists the exported operations of Client, sorted by name.
func Methods() []string {
	t := reflect.TypeOf(&Client{})
	names := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		names = append(names, t.Method(i).Name)
	}
	sort.Strings(names)
	return names
}
