package user

import (
	"errors"
	"fmt"
	"time"
)

// Each embedded list keeps its entries newest-first and is truncated from
// the tail immediately after every insert.
const (
	maxSearchHistory = 50
	maxViewedEntries = 100
	maxActivityLog   = 100
)

var (
	ErrDuplicateItem = errors.New("product already in wishlist")
	ErrItemNotFound  = errors.New("product not found in wishlist")
)

// prepend inserts entry at the front and drops tail entries past limit.
// A limit of 0 means unbounded.
func prepend[T any](list []T, entry T, limit int) []T {
	list = append([]T{entry}, list...)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

func (u *User) logActivity(kind ActivityType, description string, at time.Time) {
	u.Activity = prepend(u.Activity, ActivityEntry{
		ActivityType: kind,
		Description:  description,
		Timestamp:    at,
	}, maxActivityLog)
}

// AddSearch records a search at the front of the history, evicting the
// oldest entry past the cap.
func (u *User) AddSearch(query, category string) {
	now := time.Now()
	u.SearchHistory = prepend(u.SearchHistory, SearchEntry{
		Query:     query,
		Category:  category,
		Timestamp: now,
	}, maxSearchHistory)
	u.logActivity(ActivitySearch, fmt.Sprintf("Searched for %q", query), now)
}

// AddWishlistItem inserts item at the front of the wishlist. Items are
// unique by product ID; a repeat add fails with ErrDuplicateItem.
func (u *User) AddWishlistItem(item WishlistItem) error {
	for _, existing := range u.Wishlist {
		if existing.ProductID == item.ProductID {
			return ErrDuplicateItem
		}
	}

	now := time.Now()
	item.DateAdded = now
	u.Wishlist = prepend(u.Wishlist, item, 0)
	u.logActivity(ActivityWishlistAdd, fmt.Sprintf("Added %s to wishlist", item.Name), now)
	return nil
}

// RemoveWishlistItem removes the entry with the given product ID, or fails
// with ErrItemNotFound.
func (u *User) RemoveWishlistItem(productID string) error {
	for i, item := range u.Wishlist {
		if item.ProductID == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			u.logActivity(ActivityWishlistRemove, fmt.Sprintf("Removed %s from wishlist", item.Name), time.Now())
			return nil
		}
	}
	return ErrItemNotFound
}

// RecordProductView puts the view at the front of the viewed list. A repeat
// view of the same product replaces the old entry instead of duplicating it.
func (u *User) RecordProductView(view ViewedProduct) {
	for i, existing := range u.ViewedProducts {
		if existing.ProductID == view.ProductID {
			u.ViewedProducts = append(u.ViewedProducts[:i], u.ViewedProducts[i+1:]...)
			break
		}
	}

	now := time.Now()
	view.ViewedAt = now
	u.ViewedProducts = prepend(u.ViewedProducts, view, maxViewedEntries)
	u.logActivity(ActivityProductView, fmt.Sprintf("Viewed %s", view.Name), now)
}
