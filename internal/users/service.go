// Package users fronts the upstream account directory for the admin console.
package users

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
	ListUsers(ctx context.Context) ([]upstream.User, error)
	GetUser(ctx context.Context, userID string) (*upstream.User, error)
	UpdateUser(ctx context.Context, userID string, user upstream.User) (*upstream.User, error)
	DeleteUser(ctx context.Context, userID string) error
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

// List fetches the directory filtered by name or email substring, newest
// accounts first.
func (s *Service) List(ctx context.Context, token, search string) ([]upstream.User, error) {
	users, err := s.clients(token).ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.Filter(users,
		listview.TextMatch(search, func(u upstream.User) []string {
			return []string{u.Name, u.Email}
		}),
	)
	listview.SortByTime(filtered, func(u upstream.User) time.Time { return u.CreatedAt }, true)
	return filtered, nil
}

func (s *Service) Get(ctx context.Context, token, userID string) (*upstream.User, error) {
	return s.clients(token).GetUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, token, userID string, user upstream.User) (*upstream.User, error) {
	return s.clients(token).UpdateUser(ctx, userID, user)
}

func (s *Service) Delete(ctx context.Context, token, userID string) error {
	return s.clients(token).DeleteUser(ctx, userID)
}
