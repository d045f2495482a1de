package adapters

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
)

type HumbugClient struct {
	spire *Transport
}

var _ f.HumbugProvider = (*HumbugClient)(nil)

func NewHumbugClient(spire *Transport) *HumbugClient {
	return &HumbugClient{spire: spire}
}

func (c *HumbugClient) GetHumbugIntegrations(ctx context.Context, creds f.Credentials, groupID *uuid.UUID, opts ...f.CallOptions) (*f.HumbugIntegrations, error) {
	query := url.Values{}
	if groupID != nil {
		query.Set("group_id", groupID.String())
	}
	var integrations f.HumbugIntegrations
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "humbug/integrations",
		Creds:  &creds,
		Query:  query,
		Result: &integrations,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &integrations, nil
}
