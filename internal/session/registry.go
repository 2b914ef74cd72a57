// Package session owns the lifecycle of per-user gateway sessions: the
// cart and wishlist stores are constructed at login, rehydrated from Redis
// after a gateway restart, and torn down at logout. Stores are handed to
// callers explicitly, never reached through package globals.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mercaline/storefront-gateway/internal/cart"
	"github.com/mercaline/storefront-gateway/internal/wishlist"
	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	redislib "github.com/redis/go-redis/v9"
)

// Client is the authenticated upstream surface a session's stores consume.
type Client interface {
	cart.API
	wishlist.API
}

// Authenticator is the upstream identity surface used at session creation.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Register(ctx context.Context, input upstream.RegisterInput) (*upstream.AuthResult, error)
}

type recordStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type recordKeyer interface {
	SessionKey(sessionID string) string
	UserRecordKey(sessionID string) string
}

// Session binds one authenticated user to their stores and upstream token.
type Session struct {
	ID       string
	User     upstream.User
	Token    string
	Cart     *cart.Store
	Wishlist *wishlist.Store
}

// record is the durable shape persisted to Redis, the analog of the client
// device's local copy of the signed-in user.
type record struct {
	User  upstream.User `json:"user"`
	Token string        `json:"token"`
}

// Registry creates, resolves, and revokes sessions.
type Registry struct {
	auth    Authenticator
	clients func(token string) Client
	store   recordStore
	keyer   recordKeyer
	rules   cart.PricingRules
	ttl     time.Duration
	logg    *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// RegistryParams wires the registry's collaborators.
type RegistryParams struct {
	Auth         Authenticator
	ClientForTok func(token string) Client
	Store        recordStore
	Keyer        recordKeyer
	PricingRules cart.PricingRules
	SessionTTL   time.Duration
	Logger       *logger.Logger
}

// NewRegistry validates the wiring and returns an empty registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Auth == nil {
		return nil, fmt.Errorf("authenticator is required")
	}
	if params.ClientForTok == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	if params.Store == nil || params.Keyer == nil {
		return nil, fmt.Errorf("record store and keyer are required")
	}
	if params.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Registry{
		auth:     params.Auth,
		clients:  params.ClientForTok,
		store:    params.Store,
		keyer:    params.Keyer,
		rules:    params.PricingRules,
		ttl:      params.SessionTTL,
		logg:     params.Logger,
		sessions: make(map[string]*Session),
	}, nil
}

// Login authenticates against the upstream identity service and builds a
// fresh session with empty stores. Hydration of cart and wishlist happens
// best-effort; a failed prefetch leaves the stores empty rather than failing
// the login.
func (r *Registry) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return r.adopt(ctx, result)
}

// Register creates the upstream account and immediately opens a session.
func (r *Registry) Register(ctx context.Context, input upstream.RegisterInput) (*Session, error) {
	result, err := r.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return r.adopt(ctx, result)
}

func (r *Registry) adopt(ctx context.Context, result *upstream.AuthResult) (*Session, error) {
	if result == nil || strings.TrimSpace(result.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream returned no token")
	}

	sessionID := uuid.NewString()
	if err := r.persist(ctx, sessionID, record{User: result.User, Token: result.Token}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}

	session := r.build(sessionID, result.User, result.Token)
	r.hydrate(ctx, session)

	r.mu.Lock()
	r.sessions[sessionID] = session
	r.mu.Unlock()
	return session, nil
}

// Resolve returns the live session, rebuilding it from the Redis record when
// the gateway restarted since login.
func (r *Registry) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	r.mu.Lock()
	if session, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return session, nil
	}
	r.mu.Unlock()

	raw, err := r.store.Get(ctx, r.keyer.UserRecordKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session record")
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode session record")
	}

	session := r.build(sessionID, rec.User, rec.Token)
	r.hydrate(ctx, session)

	r.mu.Lock()
	// Another request may have rehydrated concurrently; keep the winner so
	// both callers share one store.
	if existing, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.sessions[sessionID] = session
	r.mu.Unlock()

	if r.logg != nil {
		r.logg.Info(r.logg.WithSessionID(ctx, sessionID), "session.rehydrated")
	}
	return session, nil
}

// HasSession reports liveness for the auth middleware.
func (r *Registry) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	if _, err := r.store.Get(ctx, r.keyer.SessionKey(sessionID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Logout revokes the session everywhere: Redis keys, in-memory entry, and
// the stores' local state.
func (r *Registry) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}

	r.mu.Lock()
	session, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if ok {
		session.Cart.Reset()
		session.Wishlist.Reset()
	}

	return r.store.Del(ctx, r.keyer.SessionKey(sessionID), r.keyer.UserRecordKey(sessionID))
}

func (r *Registry) build(sessionID string, user upstream.User, token string) *Session {
	client := r.clients(token)
	return &Session{
		ID:       sessionID,
		User:     user,
		Token:    token,
		Cart:     cart.NewStore(client, r.rules, r.logg),
		Wishlist: wishlist.NewStore(client, r.logg),
	}
}

func (r *Registry) persist(ctx context.Context, sessionID string, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.keyer.SessionKey(sessionID), "1", r.ttl); err != nil {
		return err
	}
	return r.store.Set(ctx, r.keyer.UserRecordKey(sessionID), payload, r.ttl)
}

// hydrate prefetches cart and wishlist. Failures are logged inside the
// stores and leave them empty; the next screen-level fetch retries.
func (r *Registry) hydrate(ctx context.Context, session *Session) {
	_ = session.Cart.Fetch(ctx)
	_ = session.Wishlist.Fetch(ctx)
}
