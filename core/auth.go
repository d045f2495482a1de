package f

import (
	"fmt"
	"strings"
	"time"

	"github.com/soffa-projects/bugout-go/errors"
)

// AuthType is the scheme part of the Authorization header.
type AuthType string

const (
	AuthBearer AuthType = "Bearer"
	AuthWeb3   AuthType = "Web3"
)

// ParseAuthType accepts the scheme in any case ("bearer", "Web3", ...).
// An empty value means bearer.
func ParseAuthType(value string) (AuthType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "bearer":
		return AuthBearer, nil
	case "web3":
		return AuthWeb3, nil
	}
	return "", errors.InvalidParameters("unsupported auth type: %q", value)
}

// Credentials identify the caller of an authenticated endpoint.
type Credentials struct {
	Token string
	Type  AuthType
}

func Bearer(token string) Credentials {
	return Credentials{Token: token, Type: AuthBearer}
}

func Web3(signature string) Credentials {
	return Credentials{Token: signature, Type: AuthWeb3}
}

func (c Credentials) IsZero() bool {
	return c.Token == ""
}

// Validate rejects schemes other than Bearer and Web3. An empty Type is bearer.
func (c Credentials) Validate() error {
	if c.Type == "" || c.Type == AuthBearer || c.Type == AuthWeb3 {
		return nil
	}
	return errors.InvalidParameters("unsupported auth type: %q", c.Type)
}

// Header renders the Authorization header value, "<scheme> <token>".
func (c Credentials) Header() string {
	scheme := c.Type
	if scheme == "" {
		scheme = AuthBearer
	}
	return fmt.Sprintf("%s %s", scheme, c.Token)
}

// CallOptions tune a single request. Zero values fall back to the client defaults.
type CallOptions struct {
	Timeout time.Duration
	Headers map[string]string
}

// MergeCallOptions folds opts left to right; later timeouts win and headers accumulate.
func MergeCallOptions(opts ...CallOptions) CallOptions {
	merged := CallOptions{Headers: map[string]string{}}
	for _, opt := range opts {
		if opt.Timeout > 0 {
			merged.Timeout = opt.Timeout
		}
		for key, value := range opt.Headers {
			merged.Headers[key] = value
		}
	}
	return merged
}
