package cart

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// LineItem is one product-and-quantity pair in the session cart.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageRef  string          `json:"image_ref,omitempty"`
	Brand     string          `json:"brand,omitempty"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// Coupon is the single discount applied to the cart, if any.
type Coupon struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// API is the slice of the upstream client the store depends on.
type API interface {
	GetCart(ctx context.Context) (*upstream.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (*upstream.Cart, error)
	ClearCart(ctx context.Context) error
	ApplyCartCoupon(ctx context.Context, code string) (*upstream.Cart, error)
	RemoveCartCoupon(ctx context.Context) (*upstream.Cart, error)
}

// Store holds the session's view of the cart. The server owns the durable
// copy; every mutation round-trips and replaces local state with the
// authoritative response. Each call carries a monotonic sequence number so a
// slow response cannot overwrite the result of a newer mutation.
type Store struct {
	api   API
	rules PricingRules
	logg  *logger.Logger

	mu      sync.Mutex
	items   []LineItem
	coupon  *Coupon
	nextSeq uint64
	applied uint64
}

// NewStore builds a cart store bound to an authenticated upstream client.
func NewStore(api API, rules PricingRules, logg *logger.Logger) *Store {
	return &Store{
		api:   api,
		rules: rules,
		logg:  logg,
	}
}

// Fetch replaces local state with the server's cart. On failure the previous
// state is kept and the error is logged; nothing is retried.
func (s *Store) Fetch(ctx context.Context) error {
	seq := s.begin()
	snapshot, err := s.api.GetCart(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart.fetch failed, keeping previous state", err)
		}
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// Add sends a product and quantity to the server, which merges into any
// existing line. Quantity defaults to 1 when not positive.
func (s *Store) Add(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	seq := s.begin()
	snapshot, err := s.api.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// Remove deletes the line entirely.
func (s *Store) Remove(ctx context.Context, productID string) error {
	seq := s.begin()
	snapshot, err := s.api.RemoveCartItem(ctx, productID)
	if err != nil {
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 are a no-op:
// removing a line is an explicit Remove, never a zero-quantity update.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	seq := s.begin()
	snapshot, err := s.api.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// Clear empties the cart server-side and locally, coupon included.
func (s *Store) Clear(ctx context.Context) error {
	seq := s.begin()
	if err := s.api.ClearCart(ctx); err != nil {
		return err
	}
	s.commit(seq, &upstream.Cart{})
	return nil
}

// ApplyCoupon attaches a coupon in a single round-trip: local state changes
// only after the server confirms, so the two views cannot diverge. Applying a
// new coupon replaces any previous one.
func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	seq := s.begin()
	snapshot, err := s.api.ApplyCartCoupon(ctx, code)
	if err != nil {
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// ClearCoupon detaches any applied coupon, server-first.
func (s *Store) ClearCoupon(ctx context.Context) error {
	seq := s.begin()
	snapshot, err := s.api.RemoveCartCoupon(ctx)
	if err != nil {
		return err
	}
	s.commit(seq, snapshot)
	return nil
}

// Reset drops local state without a server call. Used on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.coupon = nil
}

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Coupon returns the applied coupon, or nil.
func (s *Store) Coupon() *Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	clone := *s.coupon
	return &clone
}

// Totals recomputes the derived money amounts from current state.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	discount := decimal.Zero
	if s.coupon != nil {
		discount = s.coupon.Discount
	}
	s.mu.Unlock()

	return ComputeTotals(items, discount, s.rules)
}

// Count is the total quantity across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// begin issues the sequence number for one server round-trip. The lock is not
// held across the network call; ordering is enforced at commit time.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// commit applies a server snapshot unless a newer mutation already landed, in
// which case the stale response is discarded.
func (s *Store) commit(seq uint64, snapshot *upstream.Cart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.replaceLocked(snapshot)
	return true
}

func (s *Store) replaceLocked(snapshot *upstream.Cart) {
	if snapshot == nil {
		s.items = nil
		s.coupon = nil
		return
	}
	items := make([]LineItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		if item.Quantity < 1 {
			continue
		}
		items = append(items, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.Price,
			ImageRef:  item.ImageURL,
			Brand:     item.Brand,
			Stock:     item.Stock,
			Quantity:  item.Quantity,
		})
	}
	s.items = items

	if snapshot.Coupon == nil {
		s.coupon = nil
		return
	}
	s.coupon = &Coupon{
		Code:     strings.ToUpper(strings.TrimSpace(snapshot.Coupon.Code)),
		Discount: snapshot.Coupon.Discount,
		Metadata: snapshot.Coupon.Metadata,
	}
}
