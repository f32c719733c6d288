// ABOUTME: Identity provider client for a Supabase-compatible auth server, built on gotrue-go
// ABOUTME: Creates auto-confirmed users with the service key and verifies access tokens

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"shoplist-api/core/domain"
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/interfaces"
)

const apiName = "supabase-auth"

// ErrNotConfigured is returned when the provider URL or service key is missing
var ErrNotConfigured = errors.New("identity provider is not configured")

// Client implements interfaces.IdentityProvider with a gotrue client
type Client struct {
	auth       gotrue.Client
	configured bool
	serviceKey string
	transport  http.RoundTripper
	timeout    time.Duration
	logger     interfaces.Logger
}

// NewClient creates an identity provider client. Requests go through
// transport (http.DefaultTransport when nil) and are bounded by timeout.
func NewClient(baseURL, serviceKey string, transport http.RoundTripper, timeout time.Duration, logger interfaces.Logger) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		auth:       gotrue.New("", serviceKey).WithCustomGoTrueURL(baseURL + "/auth/v1"),
		configured: baseURL != "" && serviceKey != "",
		serviceKey: serviceKey,
		transport:  transport,
		timeout:    timeout,
		logger:     logger,
	}
}

// CreateUser registers a user whose email is confirmed immediately
func (c *Client) CreateUser(ctx context.Context, req interfaces.SignupRequest) (*domain.User, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	auth, exchange, cancel := c.session(ctx, c.serviceKey)
	defer cancel()

	password := req.Password
	resp, err := auth.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        req.Email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"name": req.Name},
	})
	if err != nil {
		err = exchange.classify(err)
		if c.logger != nil {
			c.logger.Warn("Sign up rejected", map[string]interface{}{
				"email": req.Email,
				"error": err.Error(),
			})
		}
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("User created", map[string]interface{}{
			"email":   req.Email,
			"user_id": resp.ID.String(),
		})
	}

	return toDomain(&resp.User), nil
}

// VerifyToken resolves an access token to its user
func (c *Client) VerifyToken(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, &coreerrors.UnauthorizedError{Message: "missing access token"}
	}
	if !c.configured {
		return nil, ErrNotConfigured
	}

	auth, exchange, cancel := c.session(ctx, accessToken)
	defer cancel()

	resp, err := auth.GetUser()
	if err != nil {
		if exchange.status == http.StatusUnauthorized || exchange.status == http.StatusForbidden {
			return nil, &coreerrors.UnauthorizedError{Message: "invalid access token"}
		}
		return nil, exchange.classify(err)
	}
	if resp.ID == uuid.Nil {
		return nil, &coreerrors.UnauthorizedError{Message: "token has no user"}
	}

	return toDomain(&resp.User), nil
}

// session returns a gotrue client bound to ctx and bearer. gotrue calls take
// no context, so the caller's context is attached in the transport.
func (c *Client) session(ctx context.Context, bearer string) (gotrue.Client, *exchange, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	ex := &exchange{ctx: ctx, next: c.transport}
	return c.auth.WithToken(bearer).WithClient(http.Client{Transport: ex}), ex, cancel
}

func toDomain(u *types.User) *domain.User {
	user := &domain.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if name, ok := u.UserMetadata["name"].(string); ok {
		user.Name = name
	}
	return user
}

// exchange is a single-use transport that runs the request under ctx and
// keeps the status and error body of the response.
type exchange struct {
	ctx    context.Context
	next   http.RoundTripper
	status int
	body   []byte
}

func (e *exchange) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := e.next.RoundTrip(req.WithContext(e.ctx))
	if err != nil {
		return nil, err
	}

	e.status = resp.StatusCode
	if resp.StatusCode >= 300 {
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read identity provider response: %w", err)
		}
		e.body = data
		resp.Body = io.NopCloser(bytes.NewReader(data))
	}
	return resp, nil
}

// classify turns a failed gotrue call into ExternalAPIError when the
// provider answered, or a wrapped transport error when it did not.
func (e *exchange) classify(err error) error {
	switch {
	case e.status == 0:
		return fmt.Errorf("identity provider request failed: %w", err)
	case e.status >= 300:
		var apiErr authError
		_ = json.Unmarshal(e.body, &apiErr)
		msg := apiErr.text()
		if msg == "" {
			msg = http.StatusText(e.status)
		}
		return &coreerrors.ExternalAPIError{
			StatusCode: e.status,
			Message:    msg,
			API:        apiName,
		}
	default:
		return fmt.Errorf("invalid identity provider response: %w", err)
	}
}

// authError covers the error shapes the auth server has used across versions
type authError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *authError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}
