package cart

import (
	"context"
	"testing"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

type stubCartAPI struct {
	cart    upstream.Cart
	err     error
	calls   []string
	onApply func(code string) (*upstream.Cart, error)
}

func (s *stubCartAPI) snapshot() *upstream.Cart {
	clone := s.cart
	return &clone
}

func (s *stubCartAPI) GetCart(ctx context.Context) (*upstream.Cart, error) {
	s.calls = append(s.calls, "get")
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(), nil
}

func (s *stubCartAPI) AddCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error) {
	s.calls = append(s.calls, "add")
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items[i].Quantity += quantity
			return s.snapshot(), nil
		}
	}
	s.cart.Items = append(s.cart.Items, upstream.CartItem{
		ProductID: productID,
		Price:     decimal.NewFromInt(100),
		Quantity:  quantity,
	})
	return s.snapshot(), nil
}

func (s *stubCartAPI) UpdateCartItem(ctx context.Context, productID string, quantity int) (*upstream.Cart, error) {
	s.calls = append(s.calls, "update")
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items[i].Quantity = quantity
		}
	}
	return s.snapshot(), nil
}

func (s *stubCartAPI) RemoveCartItem(ctx context.Context, productID string) (*upstream.Cart, error) {
	s.calls = append(s.calls, "remove")
	if s.err != nil {
		return nil, s.err
	}
	kept := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.cart.Items = kept
	return s.snapshot(), nil
}

func (s *stubCartAPI) ClearCart(ctx context.Context) error {
	s.calls = append(s.calls, "clear")
	if s.err != nil {
		return s.err
	}
	s.cart = upstream.Cart{}
	return nil
}

func (s *stubCartAPI) ApplyCartCoupon(ctx context.Context, code string) (*upstream.Cart, error) {
	s.calls = append(s.calls, "apply-coupon")
	if s.onApply != nil {
		return s.onApply(code)
	}
	if s.err != nil {
		return nil, s.err
	}
	s.cart.Coupon = &upstream.Coupon{Code: code, Discount: decimal.NewFromInt(10)}
	return s.snapshot(), nil
}

func (s *stubCartAPI) RemoveCartCoupon(ctx context.Context) (*upstream.Cart, error) {
	s.calls = append(s.calls, "remove-coupon")
	if s.err != nil {
		return nil, s.err
	}
	s.cart.Coupon = nil
	return s.snapshot(), nil
}

func newTestStore(api API) *Store {
	return NewStore(api, DefaultPricingRules(), nil)
}

func TestStoreAddMergesQuantities(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.Add(ctx, "p1", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := store.Add(ctx, "p1", 2); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", items[0].Quantity)
	}
}

func TestStoreAddDefaultsQuantityToOne(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)

	if err := store.Add(context.Background(), "p1", 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := store.Count(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
}

func TestStoreUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.Add(ctx, "p1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	calls := len(api.calls)

	if err := store.UpdateQuantity(ctx, "p1", 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.UpdateQuantity(ctx, "p1", -4); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(api.calls) != calls {
		t.Fatalf("expected no server calls for sub-one quantities, got %v", api.calls[calls:])
	}
	if got := store.Items()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity unchanged at 2, got %d", got)
	}
}

func TestStoreClearEmptiesItemsAndCoupon(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.Add(ctx, "p1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.ApplyCoupon(ctx, "SAVE10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if got := store.Count(); got != 0 {
		t.Fatalf("expected empty cart, count %d", got)
	}
	if store.Coupon() != nil {
		t.Fatalf("expected coupon cleared")
	}
}

func TestStoreApplyCouponReplacesPrevious(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.ApplyCoupon(ctx, "first"); err != nil {
		t.Fatalf("apply first: %v", err)
	}
	if err := store.ApplyCoupon(ctx, "second"); err != nil {
		t.Fatalf("apply second: %v", err)
	}

	coupon := store.Coupon()
	if coupon == nil {
		t.Fatalf("expected a coupon")
	}
	if coupon.Code != "SECOND" {
		t.Fatalf("expected replacement coupon SECOND, got %q", coupon.Code)
	}
}

func TestStoreApplyCouponRejectionKeepsState(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.ApplyCoupon(ctx, "good"); err != nil {
		t.Fatalf("apply good: %v", err)
	}
	api.onApply = func(code string) (*upstream.Cart, error) {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "coupon expired")
	}

	err := store.ApplyCoupon(ctx, "bad")
	if err == nil {
		t.Fatalf("expected rejection error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream rejection, got %v", err)
	}

	coupon := store.Coupon()
	if coupon == nil || coupon.Code != "GOOD" {
		t.Fatalf("expected last-known-good coupon GOOD, got %+v", coupon)
	}
}

func TestStoreFetchFailureKeepsPreviousState(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	if err := store.Add(ctx, "p1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	api.err = pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
	if err := store.Fetch(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}

	if got := store.Count(); got != 2 {
		t.Fatalf("expected previous state kept, count %d", got)
	}
}

func TestStoreDiscardsStaleSnapshot(t *testing.T) {
	store := newTestStore(nil)

	oldSeq := store.begin()
	newSeq := store.begin()

	fresh := &upstream.Cart{Items: []upstream.CartItem{{ProductID: "fresh", Price: decimal.NewFromInt(1), Quantity: 1}}}
	stale := &upstream.Cart{Items: []upstream.CartItem{{ProductID: "stale", Price: decimal.NewFromInt(1), Quantity: 5}}}

	if applied := store.commit(newSeq, fresh); !applied {
		t.Fatalf("expected newer snapshot to apply")
	}
	if applied := store.commit(oldSeq, stale); applied {
		t.Fatalf("expected stale snapshot to be discarded")
	}

	items := store.Items()
	if len(items) != 1 || items[0].ProductID != "fresh" {
		t.Fatalf("expected fresh state to win, got %+v", items)
	}
}

func TestStoreTotalsUseCouponDiscount(t *testing.T) {
	api := &stubCartAPI{}
	store := newTestStore(api)
	ctx := context.Background()

	// Stub prices every product at 100; six units puts the cart over the
	// free-shipping threshold.
	if err := store.Add(ctx, "p1", 6); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.ApplyCoupon(ctx, "SAVE10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	totals := store.Totals()
	if !totals.Subtotal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected subtotal 600, got %s", totals.Subtotal)
	}
	if !totals.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", totals.Shipping)
	}
	// 600 + 30 tax - 10 discount.
	if !totals.FinalTotal.Equal(decimal.NewFromInt(620)) {
		t.Fatalf("expected final total 620, got %s", totals.FinalTotal)
	}
}

func TestStoreDropsZeroQuantityRowsFromSnapshot(t *testing.T) {
	api := &stubCartAPI{cart: upstream.Cart{Items: []upstream.CartItem{
		{ProductID: "keep", Price: decimal.NewFromInt(10), Quantity: 2},
		{ProductID: "drop", Price: decimal.NewFromInt(10), Quantity: 0},
	}}}
	store := newTestStore(api)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	items := store.Items()
	if len(items) != 1 || items[0].ProductID != "keep" {
		t.Fatalf("expected zero-quantity row dropped, got %+v", items)
	}
}
