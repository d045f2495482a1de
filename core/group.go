package f

import (
	"context"

	"github.com/google/uuid"
)

type Group struct {
	ID            uuid.UUID `json:"id"`
	GroupName     *string   `json:"group_name"`
	Autogenerated bool      `json:"autogenerated"`
}

type GroupUser struct {
	GroupID       uuid.UUID `json:"group_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserType      string    `json:"user_type"`
	Autogenerated *bool     `json:"autogenerated,omitempty"`
	GroupName     *string   `json:"group_name,omitempty"`
}

type UserGroups struct {
	Groups []GroupUser `json:"groups"`
}

type GroupMembers struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Users []UserShort `json:"users"`
}

type Application struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

type Applications struct {
	Applications []Application `json:"applications"`
}

// GroupMember selects a user by username or email; one of them is required.
type GroupMember struct {
	Username string
	Email    string
}

type GroupProvider interface {
	GetGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, opts ...CallOptions) (*Group, error)
	FindGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, opts ...CallOptions) (*Group, error)
	GetUserGroups(ctx context.Context, creds Credentials, opts ...CallOptions) (*UserGroups, error)
	CreateGroup(ctx context.Context, creds Credentials, groupName string, opts ...CallOptions) (*Group, error)
	SetUserGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, userType Role, member GroupMember, opts ...CallOptions) (*GroupUser, error)
	DeleteUserGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, member GroupMember, opts ...CallOptions) (*GroupUser, error)
	GetGroupMembers(ctx context.Context, creds Credentials, groupID uuid.UUID, opts ...CallOptions) (*GroupMembers, error)
	UpdateGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, groupName string, opts ...CallOptions) (*Group, error)
	DeleteGroup(ctx context.Context, creds Credentials, groupID uuid.UUID, opts ...CallOptions) (*Group, error)

	CreateApplication(ctx context.Context, creds Credentials, groupID uuid.UUID, name string, description string, opts ...CallOptions) (*Application, error)
	GetApplication(ctx context.Context, creds Credentials, applicationID uuid.UUID, opts ...CallOptions) (*Application, error)
	ListApplications(ctx context.Context, creds Credentials, groupID *uuid.UUID, opts ...CallOptions) (*Applications, error)
	DeleteApplication(ctx context.Context, creds Credentials, applicationID uuid.UUID, opts ...CallOptions) (*Application, error)
}
