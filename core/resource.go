package f

import (
	"context"

	"github.com/google/uuid"
	"github.com/soffa-projects/bugout-go/h"
)

type Resource struct {
	ID            uuid.UUID      `json:"id"`
	ApplicationID uuid.UUID      `json:"application_id"`
	ResourceData  map[string]any `json:"resource_data"`
	CreatedAt     Timestamp      `json:"created_at"`
	UpdatedAt     Timestamp      `json:"updated_at"`
}

// Decode copies ResourceData into out, matching keys against json tags.
func (r Resource) Decode(out any) error {
	return h.DecodeMap(r.ResourceData, out)
}

type Resources struct {
	Resources []Resource `json:"resources"`
}

type ResourceHolder struct {
	ID          uuid.UUID  `json:"holder_id"`
	HolderType  HolderType `json:"holder_type"`
	Permissions []string   `json:"permissions"`
}

type ResourceHolders struct {
	ResourceID uuid.UUID        `json:"resource_id"`
	Holders    []ResourceHolder `json:"holders"`
}

// ResourceDataUpdate is the body of an update: keys in Update are set, keys in Drop removed.
type ResourceDataUpdate struct {
	Update map[string]any `json:"update"`
	Drop   []string       `json:"drop_keys"`
}

type ResourceProvider interface {
	CreateResource(ctx context.Context, creds Credentials, applicationID uuid.UUID, data map[string]any, opts ...CallOptions) (*Resource, error)
	GetResource(ctx context.Context, creds Credentials, resourceID uuid.UUID, opts ...CallOptions) (*Resource, error)
	ListResources(ctx context.Context, creds Credentials, params map[string]string, opts ...CallOptions) (*Resources, error)
	UpdateResource(ctx context.Context, creds Credentials, resourceID uuid.UUID, update ResourceDataUpdate, opts ...CallOptions) (*Resource, error)
	DeleteResource(ctx context.Context, creds Credentials, resourceID uuid.UUID, opts ...CallOptions) (*Resource, error)
	GetResourceHolders(ctx context.Context, creds Credentials, resourceID uuid.UUID, opts ...CallOptions) (*ResourceHolders, error)
	AddResourceHolderPermissions(ctx context.Context, creds Credentials, resourceID uuid.UUID, holder ResourceHolder, opts ...CallOptions) (*ResourceHolders, error)
	DeleteResourceHolderPermissions(ctx context.Context, creds Credentials, resourceID uuid.UUID, holder ResourceHolder, opts ...CallOptions) (*ResourceHolders, error)
}
