package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mercaline/storefront-gateway/api/middleware"
	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/api/validators"
	"github.com/mercaline/storefront-gateway/internal/session"
	pkgAuth "github.com/mercaline/storefront-gateway/pkg/auth"
	"github.com/mercaline/storefront-gateway/pkg/config"
	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

// SessionRegistry is the session lifecycle surface the auth handlers need.
type SessionRegistry interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Register(ctx context.Context, input upstream.RegisterInput) (*session.Session, error)
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// identityProxy covers the sessionless flows passed straight to upstream.
type identityProxy interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  upstream.User `json:"user"`
}

// AuthLogin opens a gateway session and returns its access token.
func AuthLogin(registry SessionRegistry, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := registry.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := mintSessionToken(cfg, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}

		responses.WriteSuccess(w, authResponse{Token: token, User: sess.User})
	}
}

// AuthRegister creates the upstream account and opens a session in one step.
func AuthRegister(registry SessionRegistry, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := registry.Register(r.Context(), upstream.RegisterInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := mintSessionToken(cfg, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, authResponse{Token: token, User: sess.User})
	}
}

// AuthLogout revokes the caller's session.
func AuthLogout(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}
		if err := registry.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthRefresh re-mints an access token for a still-live session.
func AuthRefresh(registry SessionRegistry, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := mintSessionToken(cfg, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}
		responses.WriteSuccess(w, authResponse{Token: token, User: sess.User})
	}
}

// AuthMe returns the cached user record for the live session.
func AuthMe(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.User)
	}
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type otpVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// AuthSendOTP proxies one-time-code delivery to the identity service.
func AuthSendOTP(proxy identityProxy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload emailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := proxy.SendOTP(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// AuthVerifyOTP proxies one-time-code confirmation.
func AuthVerifyOTP(proxy identityProxy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload otpVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := proxy.VerifyOTP(r.Context(), payload.Email, payload.OTP); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "verified"})
	}
}

// AuthForgotPassword starts the password reset flow.
func AuthForgotPassword(proxy identityProxy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload emailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := proxy.ForgotPassword(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// AuthResetPassword completes the reset flow with the emailed token.
func AuthResetPassword(proxy identityProxy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resetToken := pathParam(r, "token")
		var payload resetPasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := proxy.ResetPassword(r.Context(), resetToken, payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}

func mintSessionToken(cfg config.JWTConfig, sess *session.Session) (string, error) {
	return pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:    sess.User.ID,
		Email:     sess.User.Email,
		IsAdmin:   sess.User.IsAdmin,
		SessionID: sess.ID,
	})
}

func resolveSession(r *http.Request, registry SessionRegistry) (*session.Session, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	return registry.Resolve(r.Context(), sessionID)
}
