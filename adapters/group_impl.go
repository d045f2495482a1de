package adapters

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/h"
)

// GroupClient wraps the Brood group and application endpoints.
type GroupClient struct {
	brood *Transport
}

var _ f.GroupProvider = (*GroupClient)(nil)

func NewGroupClient(brood *Transport) *GroupClient {
	return &GroupClient{brood: brood}
}

func (c *GroupClient) group(ctx context.Context, call Call, opts []f.CallOptions) (*f.Group, error) {
	var group f.Group
	call.Result = &group
	if err := c.brood.Do(ctx, call, opts...); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *GroupClient) GetGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, opts ...f.CallOptions) (*f.Group, error) {
	return c.group(ctx, Call{Method: f.MethodGet, Path: fmt.Sprintf("group/%s", groupID), Creds: &creds}, opts)
}

func (c *GroupClient) FindGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, opts ...f.CallOptions) (*f.Group, error) {
	return c.group(ctx, Call{
		Method: f.MethodGet,
		Path:   "groups/find",
		Query:  url.Values{"group_id": {groupID.String()}},
		Creds:  &creds,
	}, opts)
}

func (c *GroupClient) GetUserGroups(ctx context.Context, creds f.Credentials, opts ...f.CallOptions) (*f.UserGroups, error) {
	var groups f.UserGroups
	if err := c.brood.Do(ctx, Call{Method: f.MethodGet, Path: "groups", Creds: &creds, Result: &groups}, opts...); err != nil {
		return nil, err
	}
	return &groups, nil
}

func (c *GroupClient) CreateGroup(ctx context.Context, creds f.Credentials, groupName string, opts ...f.CallOptions) (*f.Group, error) {
	return c.group(ctx, Call{
		Method: f.MethodPost,
		Path:   "group",
		Creds:  &creds,
		Form:   map[string]string{"group_name": groupName},
	}, opts)
}

// SetUserGroup grants member the given role in the group.
func (c *GroupClient) SetUserGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, userType f.Role, member f.GroupMember, opts ...f.CallOptions) (*f.GroupUser, error) {
	form, err := memberForm(member)
	if err != nil {
		return nil, err
	}
	form["user_type"] = string(userType)
	return c.groupUser(ctx, f.MethodPost, creds, groupID, form, opts)
}

func (c *GroupClient) DeleteUserGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, member f.GroupMember, opts ...f.CallOptions) (*f.GroupUser, error) {
	form, err := memberForm(member)
	if err != nil {
		return nil, err
	}
	return c.groupUser(ctx, f.MethodDelete, creds, groupID, form, opts)
}

func (c *GroupClient) groupUser(ctx context.Context, method string, creds f.Credentials, groupID uuid.UUID, form map[string]string, opts []f.CallOptions) (*f.GroupUser, error) {
	var user f.GroupUser
	err := c.brood.Do(ctx, Call{
		Method: method,
		Path:   fmt.Sprintf("group/%s/role", groupID),
		Creds:  &creds,
		Form:   form,
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func memberForm(member f.GroupMember) (map[string]string, error) {
	if member.Username == "" && member.Email == "" {
		return nil, errors.InvalidParameters("in order to update group role, at least one of username or email must be specified")
	}
	return h.NonEmptyValues(map[string]any{
		"username": member.Username,
		"email":    member.Email,
	}), nil
}

func (c *GroupClient) GetGroupMembers(ctx context.Context, creds f.Credentials, groupID uuid.UUID, opts ...f.CallOptions) (*f.GroupMembers, error) {
	var members f.GroupMembers
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   fmt.Sprintf("group/%s/users", groupID),
		Creds:  &creds,
		Result: &members,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &members, nil
}

func (c *GroupClient) UpdateGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, groupName string, opts ...f.CallOptions) (*f.Group, error) {
	return c.group(ctx, Call{
		Method: f.MethodPut,
		Path:   fmt.Sprintf("group/%s/name", groupID),
		Creds:  &creds,
		Form:   map[string]string{"group_name": groupName},
	}, opts)
}

func (c *GroupClient) DeleteGroup(ctx context.Context, creds f.Credentials, groupID uuid.UUID, opts ...f.CallOptions) (*f.Group, error) {
	return c.group(ctx, Call{Method: f.MethodDelete, Path: fmt.Sprintf("group/%s", groupID), Creds: &creds}, opts)
}

// ------------------------------------------------------------------------------------------------------------------
// APPLICATIONS
// ------------------------------------------------------------------------------------------------------------------

func (c *GroupClient) application(ctx context.Context, call Call, opts []f.CallOptions) (*f.Application, error) {
	var app f.Application
	call.Result = &app
	if err := c.brood.Do(ctx, call, opts...); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *GroupClient) CreateApplication(ctx context.Context, creds f.Credentials, groupID uuid.UUID, name string, description string, opts ...f.CallOptions) (*f.Application, error) {
	return c.application(ctx, Call{
		Method: f.MethodPost,
		Path:   "applications",
		Creds:  &creds,
		Form: h.NonEmptyValues(map[string]any{
			"group_id":    groupID.String(),
			"name":        name,
			"description": description,
		}),
	}, opts)
}

func (c *GroupClient) GetApplication(ctx context.Context, creds f.Credentials, applicationID uuid.UUID, opts ...f.CallOptions) (*f.Application, error) {
	return c.application(ctx, Call{Method: f.MethodGet, Path: fmt.Sprintf("applications/%s", applicationID), Creds: &creds}, opts)
}

// ListApplications lists the applications visible to creds, optionally restricted to one group.
func (c *GroupClient) ListApplications(ctx context.Context, creds f.Credentials, groupID *uuid.UUID, opts ...f.CallOptions) (*f.Applications, error) {
	query := url.Values{}
	if groupID != nil {
		query.Set("group_id", groupID.String())
	}
	var apps f.Applications
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "applications",
		Creds:  &creds,
		Query:  query,
		Result: &apps,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &apps, nil
}

func (c *GroupClient) DeleteApplication(ctx context.Context, creds f.Credentials, applicationID uuid.UUID, opts ...f.CallOptions) (*f.Application, error) {
	return c.application(ctx, Call{Method: f.MethodDelete, Path: fmt.Sprintf("applications/%s", applicationID), Creds: &creds}, opts)
}
