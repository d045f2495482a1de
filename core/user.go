package f

import (
	"context"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	NormalizedEmail string    `json:"normalized_email"`
	Verified        bool      `json:"verified"`
	Autogenerated   bool      `json:"autogenerated"`
	ApplicationID   *string   `json:"application_id,omitempty"`
	Web3Address     *string   `json:"web3_address,omitempty"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

type UserShort struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserType Role      `json:"user_type"`
}

type Token struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Active    bool      `json:"active"`
	TokenType *string   `json:"token_type"`
	Note      *string   `json:"note"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type UserTokens struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Tokens   []Token   `json:"token"`
}

// CreateUserRequest registers either a password user or, with Signature, a Web3 user.
type CreateUserRequest struct {
	Username      string
	Email         string
	Password      string
	Signature     string
	ApplicationID *uuid.UUID
}

type CreateTokenRequest struct {
	Username      string
	Password      string
	ApplicationID *uuid.UUID
	Note          string
}

// UserTokensFilter narrows GetUserTokens; nil fields are not sent.
type UserTokensFilter struct {
	Active     *bool
	TokenType  *TokenType
	Restricted *bool
}

type UserProvider interface {
	CreateUser(ctx context.Context, req CreateUserRequest, opts ...CallOptions) (*User, error)
	GetUser(ctx context.Context, creds Credentials, opts ...CallOptions) (*User, error)
	GetUserByID(ctx context.Context, creds Credentials, userID uuid.UUID, opts ...CallOptions) (*User, error)
	FindUser(ctx context.Context, username string, creds *Credentials, opts ...CallOptions) (*User, error)
	ConfirmEmail(ctx context.Context, creds Credentials, verificationCode string, opts ...CallOptions) (*User, error)
	RestorePassword(ctx context.Context, email string, opts ...CallOptions) (map[string]string, error)
	ResetPassword(ctx context.Context, resetID uuid.UUID, newPassword string, opts ...CallOptions) (*User, error)
	ChangePassword(ctx context.Context, creds Credentials, currentPassword string, newPassword string, opts ...CallOptions) (*User, error)
	DeleteUser(ctx context.Context, creds Credentials, userID uuid.UUID, password string, opts ...CallOptions) (*User, error)

	CreateToken(ctx context.Context, req CreateTokenRequest, opts ...CallOptions) (*Token, error)
	CreateTokenRestricted(ctx context.Context, creds Credentials, opts ...CallOptions) (*Token, error)
	RevokeToken(ctx context.Context, creds Credentials, targetToken string, opts ...CallOptions) (uuid.UUID, error)
	RevokeTokenByID(ctx context.Context, token string, opts ...CallOptions) (uuid.UUID, error)
	UpdateToken(ctx context.Context, token string, tokenType *TokenType, note *string, opts ...CallOptions) (*Token, error)
	GetTokenTypes(ctx context.Context, creds Credentials, opts ...CallOptions) ([]string, error)
	GetUserTokens(ctx context.Context, creds Credentials, filter UserTokensFilter, opts ...CallOptions) (*UserTokens, error)
}
