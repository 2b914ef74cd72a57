package wishlist

import (
	"context"
	"reflect"
	"testing"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
)

type stubWishlistAPI struct {
	ids   []string
	err   error
	calls []string
}

func (s *stubWishlistAPI) GetWishlist(ctx context.Context) ([]string, error) {
	s.calls = append(s.calls, "get")
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.ids...), nil
}

func (s *stubWishlistAPI) AddWishlistItem(ctx context.Context, productID string) error {
	s.calls = append(s.calls, "add:"+productID)
	return s.err
}

func (s *stubWishlistAPI) RemoveWishlistItem(ctx context.Context, productID string) error {
	s.calls = append(s.calls, "remove:"+productID)
	return s.err
}

func TestStoreRoundTrip(t *testing.T) {
	api := &stubWishlistAPI{}
	store := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Add(ctx, "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !store.Contains("p1") {
		t.Fatalf("expected p1 present after add")
	}
	if got := store.Count(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}

	if err := store.Remove(ctx, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if store.Contains("p1") {
		t.Fatalf("expected p1 absent after remove")
	}
	if got := store.Count(); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
}

func TestStoreAddFailureLeavesSetUnchanged(t *testing.T) {
	api := &stubWishlistAPI{err: pkgerrors.New(pkgerrors.CodeDependency, "upstream down")}
	store := NewStore(api, nil)

	if err := store.Add(context.Background(), "p1"); err == nil {
		t.Fatalf("expected add to fail")
	}
	if store.Contains("p1") {
		t.Fatalf("expected no local change on server failure")
	}
}

func TestStoreFetchReplacesSet(t *testing.T) {
	api := &stubWishlistAPI{ids: []string{"p2", "p1", ""}}
	store := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Add(ctx, "old"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if store.Contains("old") {
		t.Fatalf("expected fetch to replace, not merge")
	}
	want := []string{"p1", "p2"}
	if got := store.ProductIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
}

func TestStoreFetchFailureKeepsPreviousState(t *testing.T) {
	api := &stubWishlistAPI{}
	store := NewStore(api, nil)
	ctx := context.Background()

	if err := store.Add(ctx, "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	api.err = pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
	if err := store.Fetch(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}
	if !store.Contains("p1") {
		t.Fatalf("expected previous state kept on fetch failure")
	}
}
