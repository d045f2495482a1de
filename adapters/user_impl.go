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

// UserClient wraps the Brood user and token endpoints. Bodies are form encoded.
type UserClient struct {
	brood               *Transport
	applicationIDHeader string
}

var _ f.UserProvider = (*UserClient)(nil)

func NewUserClient(brood *Transport, applicationIDHeader string) *UserClient {
	return &UserClient{brood: brood, applicationIDHeader: applicationIDHeader}
}

func (c *UserClient) CreateUser(ctx context.Context, req f.CreateUserRequest, opts ...f.CallOptions) (*f.User, error) {
	headers := map[string]string{}
	if req.ApplicationID != nil && c.applicationIDHeader != "" {
		headers[c.applicationIDHeader] = req.ApplicationID.String()
	}
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "user",
		Form: h.NonEmptyValues(map[string]any{
			"username":       req.Username,
			"email":          req.Email,
			"password":       req.Password,
			"signature":      req.Signature,
			"application_id": uuidString(req.ApplicationID),
		}),
		Headers: headers,
		Result:  &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) GetUser(ctx context.Context, creds f.Credentials, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	if err := c.brood.Do(ctx, Call{Method: f.MethodGet, Path: "user", Creds: &creds, Result: &user}, opts...); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) GetUserByID(ctx context.Context, creds f.Credentials, userID uuid.UUID, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   fmt.Sprintf("user/%s", userID),
		Creds:  &creds,
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUser looks a user up by username. creds may be nil for anonymous lookups.
func (c *UserClient) FindUser(ctx context.Context, username string, creds *f.Credentials, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "user/find",
		Query:  url.Values{"username": {username}},
		Creds:  optional(creds),
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) ConfirmEmail(ctx context.Context, creds f.Credentials, verificationCode string, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "confirm",
		Creds:  &creds,
		Form:   map[string]string{"verification_code": verificationCode},
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) RestorePassword(ctx context.Context, email string, opts ...f.CallOptions) (map[string]string, error) {
	result := map[string]string{}
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "password/restore",
		Form:   map[string]string{"email": email},
		Result: &result,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *UserClient) ResetPassword(ctx context.Context, resetID uuid.UUID, newPassword string, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "password/reset",
		Form: map[string]string{
			"reset_id":     resetID.String(),
			"new_password": newPassword,
		},
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) ChangePassword(ctx context.Context, creds f.Credentials, currentPassword string, newPassword string, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "password/change",
		Creds:  &creds,
		Form: map[string]string{
			"current_password": currentPassword,
			"new_password":     newPassword,
		},
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user. password is only sent when not empty.
func (c *UserClient) DeleteUser(ctx context.Context, creds f.Credentials, userID uuid.UUID, password string, opts ...f.CallOptions) (*f.User, error) {
	var user f.User
	err := c.brood.Do(ctx, Call{
		Method: f.MethodDelete,
		Path:   fmt.Sprintf("user/%s", userID),
		Creds:  &creds,
		Form:   h.NonEmptyValues(map[string]any{"password": password}),
		Result: &user,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) CreateToken(ctx context.Context, req f.CreateTokenRequest, opts ...f.CallOptions) (*f.Token, error) {
	var token f.Token
	err := c.brood.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   "token",
		Form: h.NonEmptyValues(map[string]any{
			"username":       req.Username,
			"password":       req.Password,
			"application_id": uuidString(req.ApplicationID),
			"token_note":     req.Note,
		}),
		Result: &token,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *UserClient) CreateTokenRestricted(ctx context.Context, creds f.Credentials, opts ...f.CallOptions) (*f.Token, error) {
	var token f.Token
	if err := c.brood.Do(ctx, Call{Method: f.MethodPost, Path: "token/restricted", Creds: &creds, Result: &token}, opts...); err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken revokes targetToken, or the calling token when targetToken is empty.
func (c *UserClient) RevokeToken(ctx context.Context, creds f.Credentials, targetToken string, opts ...f.CallOptions) (uuid.UUID, error) {
	var revoked uuid.UUID
	err := c.brood.Do(ctx, Call{
		Method: f.MethodDelete,
		Path:   "token",
		Creds:  &creds,
		Form:   h.NonEmptyValues(map[string]any{"target_token": targetToken}),
		Result: &revoked,
	}, opts...)
	if err != nil {
		return uuid.Nil, err
	}
	return revoked, nil
}

func (c *UserClient) RevokeTokenByID(ctx context.Context, token string, opts ...f.CallOptions) (uuid.UUID, error) {
	var revoked uuid.UUID
	err := c.brood.Do(ctx, Call{
		Method: f.MethodDelete,
		Path:   fmt.Sprintf("token/%s", url.PathEscape(token)),
		Result: &revoked,
	}, opts...)
	if err != nil {
		return uuid.Nil, err
	}
	return revoked, nil
}

// UpdateToken changes the type and/or note of token. At least one of them is required.
func (c *UserClient) UpdateToken(ctx context.Context, token string, tokenType *f.TokenType, note *string, opts ...f.CallOptions) (*f.Token, error) {
	if tokenType == nil && note == nil {
		return nil, errors.InvalidParameters("in order to update token, at least one of token_type or token_note must be specified")
	}
	form := map[string]string{"access_token": token}
	if tokenType != nil {
		form["token_type"] = string(*tokenType)
	}
	if note != nil {
		form["token_note"] = *note
	}
	var updated f.Token
	if err := c.brood.Do(ctx, Call{Method: f.MethodPut, Path: "token", Form: form, Result: &updated}, opts...); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *UserClient) GetTokenTypes(ctx context.Context, creds f.Credentials, opts ...f.CallOptions) ([]string, error) {
	var types []string
	if err := c.brood.Do(ctx, Call{Method: f.MethodGet, Path: "token/types", Creds: &creds, Result: &types}, opts...); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *UserClient) GetUserTokens(ctx context.Context, creds f.Credentials, filter f.UserTokensFilter, opts ...f.CallOptions) (*f.UserTokens, error) {
	query := url.Values{}
	if filter.Active != nil {
		query.Set("active", boolFlag(*filter.Active))
	}
	if filter.TokenType != nil {
		query.Set("token_type", string(*filter.TokenType))
	}
	if filter.Restricted != nil {
		query.Set("restricted", boolFlag(*filter.Restricted))
	}
	var tokens f.UserTokens
	err := c.brood.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "tokens",
		Creds:  &creds,
		Query:  query,
		Result: &tokens,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// boolFlag renders booleans the way Brood query filters expect them, "1" or "0".
func boolFlag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
