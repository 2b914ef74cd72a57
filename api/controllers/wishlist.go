package controllers

import (
	"net/http"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/pkg/logger"
)

type wishlistView struct {
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// WishlistFetch refreshes the session wishlist from upstream and returns it.
func WishlistFetch(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Wishlist.Fetch(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistView{
			ProductIDs: sess.Wishlist.ProductIDs(),
			Count:      sess.Wishlist.Count(),
		})
	}
}

// WishlistAdd favorites a product, server-first.
func WishlistAdd(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Wishlist.Add(r.Context(), pathParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistView{
			ProductIDs: sess.Wishlist.ProductIDs(),
			Count:      sess.Wishlist.Count(),
		})
	}
}

// WishlistRemove unfavorites a product, server-first.
func WishlistRemove(registry SessionRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := sess.Wishlist.Remove(r.Context(), pathParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistView{
			ProductIDs: sess.Wishlist.ProductIDs(),
			Count:      sess.Wishlist.Count(),
		})
	}
}
