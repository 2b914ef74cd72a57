package wishlist

import (
	"context"
	"sort"
	"sync"

	"github.com/mercaline/storefront-gateway/pkg/logger"
)

// API is the slice of the upstream client the store depends on.
type API interface {
	GetWishlist(ctx context.Context) ([]string, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
}

// Store is the session's favorited-product set. Membership only; product
// details come from the catalog when a screen needs them. Mutations are
// server-first: local state changes only after the upstream call succeeds.
type Store struct {
	api  API
	logg *logger.Logger

	mu  sync.Mutex
	ids map[string]struct{}
}

// NewStore builds a wishlist store bound to an authenticated upstream client.
func NewStore(api API, logg *logger.Logger) *Store {
	return &Store{
		api:  api,
		logg: logg,
		ids:  make(map[string]struct{}),
	}
}

// Fetch replaces the local set with the server's. On failure the previous
// set is kept and the error is logged.
func (s *Store) Fetch(ctx context.Context) error {
	ids, err := s.api.GetWishlist(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "wishlist.fetch failed, keeping previous state", err)
		}
		return err
	}

	replacement := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		replacement[id] = struct{}{}
	}

	s.mu.Lock()
	s.ids = replacement
	s.mu.Unlock()
	return nil
}

// Add favorites a product. Adding an already-present id is a server-side
// no-op and leaves the set unchanged.
func (s *Store) Add(ctx context.Context, productID string) error {
	if err := s.api.AddWishlistItem(ctx, productID); err != nil {
		return err
	}
	s.mu.Lock()
	s.ids[productID] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Remove unfavorites a product.
func (s *Store) Remove(ctx context.Context, productID string) error {
	if err := s.api.RemoveWishlistItem(ctx, productID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.ids, productID)
	s.mu.Unlock()
	return nil
}

// Contains reports membership without touching the server.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[productID]
	return ok
}

// Count returns the number of favorited products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// ProductIDs returns the favorited ids in stable order.
func (s *Store) ProductIDs() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Reset drops local state without a server call. Used on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}
