package wishlist

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsense/server/internal/user"
)

var errNotFound = errors.New("record not found")

type fakeUserStore struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserStore(users ...*user.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(id uuid.UUID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) Update(u *user.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errNotFound
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func TestAddAndGet(t *testing.T) {
	u := &user.User{ID: uuid.New()}
	svc := NewService(newFakeUserStore(u))

	items, err := svc.Add(u.ID, user.WishlistItem{ProductID: "p1", Name: "Headphones"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Fatalf("unexpected wishlist: %+v", items)
	}

	// Mutation must have been persisted.
	got, err := svc.Get(u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected persisted wishlist of 1, got %d", len(got))
	}
}

func TestAddDuplicateFails(t *testing.T) {
	u := &user.User{ID: uuid.New()}
	svc := NewService(newFakeUserStore(u))

	if _, err := svc.Add(u.ID, user.WishlistItem{ProductID: "p1"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(u.ID, user.WishlistItem{ProductID: "p1"}); !errors.Is(err, user.ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}

	got, _ := svc.Get(u.ID)
	if len(got) != 1 {
		t.Fatalf("wishlist length changed on duplicate add: %d", len(got))
	}
}

func TestRemove(t *testing.T) {
	u := &user.User{ID: uuid.New()}
	store := newFakeUserStore(u)
	svc := NewService(store)

	if _, err := svc.Remove(u.ID, "p1"); !errors.Is(err, user.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	svc.Add(u.ID, user.WishlistItem{ProductID: "p1", Name: "Headphones"})
	items, err := svc.Remove(u.ID, "p1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist, got %d items", len(items))
	}

	stored, _ := store.FindByID(u.ID)
	if len(stored.Activity) == 0 || stored.Activity[0].ActivityType != user.ActivityWishlistRemove {
		t.Fatalf("expected a wishlist_remove activity entry, got %+v", stored.Activity)
	}
}

func TestUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserStore())

	if _, err := svc.Get(uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Add(uuid.New(), user.WishlistItem{ProductID: "p1"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
