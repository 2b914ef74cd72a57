// Package blogs fronts the upstream blog CRUD. The admin screen filters the
// full list client-side, so filtering happens here rather than upstream.
package blogs

import (
	"context"
	"fmt"
	"time"

	"github.com/mercaline/storefront-gateway/internal/listview"
	"github.com/mercaline/storefront-gateway/pkg/logger"
	"github.com/mercaline/storefront-gateway/pkg/upstream"
)

// API is the slice of the upstream client the service depends on.
type API interface {
	ListBlogs(ctx context.Context) ([]upstream.Blog, error)
	GetBlog(ctx context.Context, blogID string) (*upstream.Blog, error)
	CreateBlog(ctx context.Context, blog upstream.Blog) (*upstream.Blog, error)
	UpdateBlog(ctx context.Context, blogID string, blog upstream.Blog) (*upstream.Blog, error)
	DeleteBlog(ctx context.Context, blogID string) error
}

// Filters are the admin list screen's selections.
type Filters struct {
	Search string
	Status string
}

type Service struct {
	clients func(token string) API
	logg    *logger.Logger
}

func NewService(clients func(token string) API, logg *logger.Logger) (*Service, error) {
	if clients == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	return &Service{clients: clients, logg: logg}, nil
}

// List fetches every blog and applies the screen's filters, newest first.
func (s *Service) List(ctx context.Context, token string, filters Filters) ([]upstream.Blog, error) {
	blogs, err := s.clients(token).ListBlogs(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.Filter(blogs,
		listview.TextMatch(filters.Search, func(b upstream.Blog) []string {
			return []string{b.Title, b.Author}
		}),
		listview.Equals(filters.Status, func(b upstream.Blog) string { return b.Status }),
	)
	listview.SortByTime(filtered, func(b upstream.Blog) time.Time { return b.CreatedAt }, true)
	return filtered, nil
}

func (s *Service) Get(ctx context.Context, token, blogID string) (*upstream.Blog, error) {
	return s.clients(token).GetBlog(ctx, blogID)
}

func (s *Service) Create(ctx context.Context, token string, blog upstream.Blog) (*upstream.Blog, error) {
	return s.clients(token).CreateBlog(ctx, blog)
}

func (s *Service) Update(ctx context.Context, token, blogID string, blog upstream.Blog) (*upstream.Blog, error) {
	return s.clients(token).UpdateBlog(ctx, blogID, blog)
}

func (s *Service) Delete(ctx context.Context, token, blogID string) error {
	return s.clients(token).DeleteBlog(ctx, blogID)
}
