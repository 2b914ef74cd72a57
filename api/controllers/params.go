package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func pathParam(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

func queryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
