package dashboard

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopsense/server/internal/user"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore interface {
	FindByID(id uuid.UUID) (*user.User, error)
	Update(u *user.User) error
}

type Stats struct {
	TotalSearches  int `json:"totalSearches"`
	WishlistItems  int `json:"wishlistItems"`
	ProductsViewed int `json:"productsViewed"`
}

// Dashboard is a derived summary of one user's recent activity.
type Dashboard struct {
	Stats           Stats                 `json:"stats"`
	RecentSearches  []user.SearchEntry    `json:"recentSearches"`
	RecentActivity  []user.ActivityEntry  `json:"recentActivity"`
	Recommendations []user.Recommendation `json:"recommendations"`
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) GetDashboard(userID uuid.UUID) (*Dashboard, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return &Dashboard{
		Stats: Stats{
			TotalSearches:  len(u.SearchHistory),
			WishlistItems:  len(u.Wishlist),
			ProductsViewed: len(u.ViewedProducts),
		},
		RecentSearches:  head(u.SearchHistory, 5),
		RecentActivity:  head(u.Activity, 10),
		Recommendations: u.Recommendations,
	}, nil
}

// AddSearchHistory records a search, evicting the oldest entry past the
// history cap, and logs the matching activity entry.
func (s *Service) AddSearchHistory(userID uuid.UUID, query, category string) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	u.AddSearch(query, category)
	return s.users.Update(u)
}

// AddProductView records a product view with move-to-front dedup by
// product ID, and logs the matching activity entry.
func (s *Service) AddProductView(userID uuid.UUID, view user.ViewedProduct) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	u.RecordProductView(view)
	return s.users.Update(u)
}

// head returns the first n entries; lists are newest-first, so these are
// the most recent.
func head[T any](list []T, n int) []T {
	if len(list) < n {
		n = len(list)
	}
	return list[:n]
}
