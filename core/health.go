package f

import "context"

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// HealthCheckResponse aggregates the ping results of the Bugout services.
type HealthCheckResponse struct {
	Whoami     string                          `json:"whoami"`
	Status     string                          `json:"status"`
	Components map[string]HealthCheckComponent `json:"components"`
}

type HealthCheckComponent struct {
	Status  string            `json:"status,omitempty"`
	Message string            `json:"message,omitempty"`
	Ping    map[string]string `json:"ping,omitempty"`
}

func (r HealthCheckResponse) IsUp() bool {
	return r.Status == StatusUp
}

// Pinger is satisfied by anything answering a service ping endpoint.
type Pinger func(ctx context.Context, opts ...CallOptions) (map[string]string, error)

type HealthCheck struct {
	service    string
	status     string
	components map[string]HealthCheckComponent
}

func NewHealthCheck(service string) *HealthCheck {
	return &HealthCheck{
		service:    service,
		status:     StatusUp,
		components: make(map[string]HealthCheckComponent),
	}
}

// Add pings one component. A failing component marks the whole check DOWN.
func (b *HealthCheck) Add(ctx context.Context, name string, ping Pinger, opts ...CallOptions) *HealthCheck {
	component := HealthCheckComponent{Status: StatusUp}
	result, err := ping(ctx, opts...)
	if err != nil {
		component.Status = StatusDown
		component.Message = err.Error()
		b.status = StatusDown
	} else {
		component.Ping = result
	}
	b.components[name] = component
	return b
}

func (b *HealthCheck) Build() HealthCheckResponse {
	return HealthCheckResponse{
		Whoami:     b.service,
		Status:     b.status,
		Components: b.components,
	}
}
