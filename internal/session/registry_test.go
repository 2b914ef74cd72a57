package session

import (
	"context"
	"testing"
	"time"

	"github.com/mercaline/storefront-gateway/internal/cart"
	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	redislib "github.com/redis/go-redis/v9"
)

type stubAuth struct {
	result *upstream.AuthResult
	err    error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*upstream.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuth) Register(ctx context.Context, input upstream.RegisterInput) (*upstream.AuthResult, error) {
	return s.result, s.err
}

type stubClient struct{}

func (stubClient) GetCart(ctx context.Context) (*upstream.Cart, error) { return &upstream.Cart{}, nil }
func (stubClient) AddCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error) {
	return &upstream.Cart{}, nil
}
func (stubClient) UpdateCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error) {
	return &upstream.Cart{}, nil
}
func (stubClient) RemoveCartItem(ctx context.Context, productID string) (*upstream.Cart, error) {
	return &upstream.Cart{}, nil
}
func (stubClient) ClearCart(ctx context.Context) error { return nil }
func (stubClient) ApplyCartCoupon(ctx context.Context, code string) (*upstream.Cart, error) {
	return &upstream.Cart{}, nil
}
func (stubClient) RemoveCartCoupon(ctx context.Context) (*upstream.Cart, error) {
	return &upstream.Cart{}, nil
}
func (stubClient) GetWishlist(ctx context.Context) ([]string, error)              { return nil, nil }
func (stubClient) AddWishlistItem(ctx context.Context, productID string) error    { return nil }
func (stubClient) RemoveWishlistItem(ctx context.Context, productID string) error { return nil }

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	}
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type testKeyer struct{}

func (testKeyer) SessionKey(id string) string    { return "session:" + id }
func (testKeyer) UserRecordKey(id string) string { return "record:" + id }

func newTestRegistry(t *testing.T, auth Authenticator, store recordStore) *Registry {
	t.Helper()
	registry, err := NewRegistry(RegistryParams{
		Auth:         auth,
		ClientForTok: func(token string) Client { return stubClient{} },
		Store:        store,
		Keyer:        testKeyer{},
		PricingRules: cart.DefaultPricingRules(),
		SessionTTL:   time.Hour,
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return registry
}

func authResult() *upstream.AuthResult {
	return &upstream.AuthResult{
		Token: "upstream-token",
		User:  upstream.User{ID: "u1", Name: "Dana", Email: "dana@example.com"},
	}
}

func TestLoginBuildsSessionWithStores(t *testing.T) {
	store := newMemoryStore()
	registry := newTestRegistry(t, &stubAuth{result: authResult()}, store)

	session, err := registry.Login(context.Background(), "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected a session id")
	}
	if session.Cart == nil || session.Wishlist == nil {
		t.Fatalf("expected stores constructed at login")
	}
	if session.Token != "upstream-token" {
		t.Fatalf("expected upstream token on session, got %q", session.Token)
	}

	ok, err := registry.HasSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected session to be live after login")
	}
}

func TestLoginFailurePropagates(t *testing.T) {
	auth := &stubAuth{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	registry := newTestRegistry(t, auth, newMemoryStore())

	if _, err := registry.Login(context.Background(), "x@example.com", "bad"); err == nil {
		t.Fatalf("expected login failure")
	}
}

func TestResolveReturnsSameSessionInstance(t *testing.T) {
	registry := newTestRegistry(t, &stubAuth{result: authResult()}, newMemoryStore())
	ctx := context.Background()

	created, err := registry.Login(ctx, "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved, err := registry.Resolve(ctx, created.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != created {
		t.Fatalf("expected the same session instance on resolve")
	}
}

func TestResolveRehydratesFromRecordAfterRestart(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	first := newTestRegistry(t, &stubAuth{result: authResult()}, store)
	created, err := first.Login(ctx, "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// A new registry over the same store simulates a gateway restart.
	second := newTestRegistry(t, &stubAuth{result: authResult()}, store)
	resolved, err := second.Resolve(ctx, created.ID)
	if err != nil {
		t.Fatalf("resolve after restart: %v", err)
	}
	if resolved.User.Email != "dana@example.com" {
		t.Fatalf("expected user record rehydrated, got %+v", resolved.User)
	}
	if resolved.Token != "upstream-token" {
		t.Fatalf("expected upstream token rehydrated, got %q", resolved.Token)
	}
	if resolved.Cart == nil || resolved.Wishlist == nil {
		t.Fatalf("expected stores rebuilt on rehydration")
	}
}

func TestLogoutRevokesEverywhere(t *testing.T) {
	store := newMemoryStore()
	registry := newTestRegistry(t, &stubAuth{result: authResult()}, store)
	ctx := context.Background()

	session, err := registry.Login(ctx, "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := registry.Logout(ctx, session.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	ok, err := registry.HasSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected session revoked after logout")
	}
	if _, err := registry.Resolve(ctx, session.ID); err == nil {
		t.Fatalf("expected resolve to fail after logout")
	}
}

func TestResolveUnknownSessionIsUnauthorized(t *testing.T) {
	registry := newTestRegistry(t, &stubAuth{result: authResult()}, newMemoryStore())

	_, err := registry.Resolve(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
