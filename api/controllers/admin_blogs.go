package controllers

import (
	"net/http"

	"github.com/mercaline/storefront-gateway/api/responses"
	"github.com/mercaline/storefront-gateway/api/validators"
	blogsvc "github.com/mercaline/storefront-gateway/internal/blogs"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

type blogRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (b blogRequest) toBlog() upstream.Blog {
	status := b.Status
	if status == "" {
		status = "draft"
	}
	return upstream.Blog{
		Title:   b.Title,
		Content: b.Content,
		Author:  b.Author,
		Status:  status,
	}
}

// AdminBlogList serves the filtered blog list.
func AdminBlogList(registry SessionRegistry, svc *blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blogs, err := svc.List(r.Context(), sess.Token, blogsvc.Filters{
			Search: queryParam(r, "search"),
			Status: queryParam(r, "status"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blogs)
	}
}

// AdminBlogDetail serves one blog post.
func AdminBlogDetail(registry SessionRegistry, svc *blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.Get(r.Context(), sess.Token, pathParam(r, "blogId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

// AdminBlogCreate adds a blog post.
func AdminBlogCreate(registry SessionRegistry, svc *blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blog, err := svc.Create(r.Context(), sess.Token, payload.toBlog())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, blog)
	}
}

// AdminBlogUpdate replaces a blog post.
func AdminBlogUpdate(registry SessionRegistry, svc *blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blog, err := svc.Update(r.Context(), sess.Token, pathParam(r, "blogId"), payload.toBlog())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

// AdminBlogDelete removes a blog post.
func AdminBlogDelete(registry SessionRegistry, svc *blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sess.Token, pathParam(r, "blogId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
