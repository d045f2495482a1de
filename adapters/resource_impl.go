package adapters

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
)

// ResourceClient wraps the Brood resources endpoints. Bodies are JSON.
type ResourceClient struct {
	brood *Transport
}

var _ f.ResourceProvider = (*ResourceClient)(nil)

func NewResourceClient(brood *Transport) *ResourceClient {
	return &ResourceClient{brood: brood}
}

func (c *ResourceClient) resource(ctx context.Context, call Call, opts []f.CallOptions) (*f.Resource, error) {
	var resource f.Resource
	call.Result = &resource
	if err := c.brood.Do(ctx, call, opts...); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (c *ResourceClient) CreateResource(ctx context.Context, creds f.Credentials, applicationID uuid.UUID, data map[string]any, opts ...f.CallOptions) (*f.Resource, error) {
	return c.resource(ctx, Call{
		Method: f.MethodPost,
		Path:   "resources/",
		Creds:  &creds,
		Body: map[string]any{
			"application_id": applicationID,
			"resource_data":  data,
		},
	}, opts)
}

func (c *ResourceClient) GetResource(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, opts ...f.CallOptions) (*f.Resource, error) {
	return c.resource(ctx, Call{Method: f.MethodGet, Path: fmt.Sprintf("resources/%s", resourceID), Creds: &creds}, opts)
}

// ListResources filters resources by arbitrary query params, e.g. application_id
// or any top level key of resource_data.
func (c *ResourceClient) ListResources(ctx context.Context, creds f.Credentials, params map[string]string, opts ...f.CallOptions) (*f.Resources, error) {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	var resources f.Resources
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "resources/",
		Creds:  &creds,
		Query:  query,
		Result: &resources,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &resources, nil
}

func (c *ResourceClient) UpdateResource(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, update f.ResourceDataUpdate, opts ...f.CallOptions) (*f.Resource, error) {
	if update.Update == nil {
		update.Update = map[string]any{}
	}
	if update.Drop == nil {
		update.Drop = []string{}
	}
	return c.resource(ctx, Call{
		Method: f.MethodPut,
		Path:   fmt.Sprintf("resources/%s", resourceID),
		Creds:  &creds,
		Body:   update,
	}, opts)
}

func (c *ResourceClient) DeleteResource(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, opts ...f.CallOptions) (*f.Resource, error) {
	return c.resource(ctx, Call{Method: f.MethodDelete, Path: fmt.Sprintf("resources/%s", resourceID), Creds: &creds}, opts)
}

func (c *ResourceClient) holders(ctx context.Context, method string, creds f.Credentials, resourceID uuid.UUID, body any, opts []f.CallOptions) (*f.ResourceHolders, error) {
	var holders f.ResourceHolders
	err := c.brood.Do(ctx, Call{
		Method: method,
		Path:   fmt.Sprintf("resources/%s/holders", resourceID),
		Creds:  &creds,
		Body:   body,
		Result: &holders,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &holders, nil
}

func (c *ResourceClient) GetResourceHolders(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, opts ...f.CallOptions) (*f.ResourceHolders, error) {
	return c.holders(ctx, f.MethodGet, creds, resourceID, nil, opts)
}

func (c *ResourceClient) AddResourceHolderPermissions(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, holder f.ResourceHolder, opts ...f.CallOptions) (*f.ResourceHolders, error) {
	return c.holders(ctx, f.MethodPost, creds, resourceID, holder, opts)
}

func (c *ResourceClient) DeleteResourceHolderPermissions(ctx context.Context, creds f.Credentials, resourceID uuid.UUID, holder f.ResourceHolder, opts ...f.CallOptions) (*f.ResourceHolders, error) {
	return c.holders(ctx, f.MethodDelete, creds, resourceID, holder, opts)
}
