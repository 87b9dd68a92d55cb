package wishlist

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

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) Get(userID uuid.UUID) ([]user.WishlistItem, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u.Wishlist, nil
}

// Add inserts item at the front of the wishlist and records the matching
// activity entry. Fails with user.ErrDuplicateItem on a repeat product ID.
func (s *Service) Add(userID uuid.UUID, item user.WishlistItem) ([]user.WishlistItem, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := u.AddWishlistItem(item); err != nil {
		return nil, err
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u.Wishlist, nil
}

// Remove deletes the entry with the given product ID and records the
// matching activity entry. Fails with user.ErrItemNotFound if absent.
func (s *Service) Remove(userID uuid.UUID, productID string) ([]user.WishlistItem, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := u.RemoveWishlistItem(productID); err != nil {
		return nil, err
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u.Wishlist, nil
}
