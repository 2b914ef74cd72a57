package upstream

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
)

// RegisterInput is the payload for new account creation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the identity service and returns its token and
// the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	payload := map[string]string{"email": strings.TrimSpace(email), "password": password}
	var result AuthResult
	if err := c.post(ctx, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the authenticated result.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.post(ctx, "/auth/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendOTP asks the identity service to deliver a one-time code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return c.post(ctx, "/auth/send-otp", map[string]string{"email": strings.TrimSpace(email)}, nil)
}

// VerifyOTP confirms a one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and code are required")
	}
	payload := map[string]string{"email": strings.TrimSpace(email), "otp": strings.TrimSpace(code)}
	return c.post(ctx, "/auth/verify-otp", payload, nil)
}

// ForgotPassword starts the reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": strings.TrimSpace(email)}, nil)
}

// ResetPassword completes the reset flow with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}
	if newPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password is required")
	}
	payload := map[string]string{"password": newPassword}
	return c.put(ctx, "/auth/reset-password/"+url.PathEscape(trimmed), payload, nil)
}
