package f

import (
	"context"

	"github.com/google/uuid"
)

type HumbugIntegration struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	JournalID   uuid.UUID `json:"journal_id"`
	JournalName string    `json:"journal_name"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type HumbugIntegrations struct {
	Integrations []HumbugIntegration `json:"integrations"`
}

type HumbugProvider interface {
	GetHumbugIntegrations(ctx context.Context, creds Credentials, groupID *uuid.UUID, opts ...CallOptions) (*HumbugIntegrations, error)
}
