package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username        string    `gorm:"not null"`
	Email           string    `gorm:"uniqueIndex;not null"`
	PasswordHash    string    `gorm:"column:password_hash;not null"`
	IsGoogleAccount bool      `gorm:"column:is_google_account;not null;default:false"`
	Phone           string
	Location        string
	Bio             string
	AvatarURL       string `gorm:"column:avatar_url"`

	SearchHistory   []SearchEntry    `gorm:"type:jsonb;serializer:json"`
	Wishlist        []WishlistItem   `gorm:"type:jsonb;serializer:json"`
	ViewedProducts  []ViewedProduct  `gorm:"type:jsonb;serializer:json"`
	Activity        []ActivityEntry  `gorm:"type:jsonb;serializer:json"`
	Recommendations []Recommendation `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Public is the subset of a user record that is safe to return to clients.
type Public struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() Public {
	return Public{Username: u.Username, Email: u.Email}
}

type SearchEntry struct {
	Query     string    `json:"query"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

type WishlistItem struct {
	ProductID     string    `json:"productId"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Image         string    `json:"image"`
	Store         string    `json:"store"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Description   string    `json:"description"`
	DateAdded     time.Time `json:"dateAdded"`
}

type ViewedProduct struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Store     string    `json:"store"`
	ViewedAt  time.Time `json:"viewedAt"`
}

type ActivityType string

const (
	ActivitySearch         ActivityType = "search"
	ActivityWishlistAdd    ActivityType = "wishlist_add"
	ActivityWishlistRemove ActivityType = "wishlist_remove"
	ActivityProductView    ActivityType = "product_view"
)

type ActivityEntry struct {
	ActivityType ActivityType `json:"activityType"`
	Description  string       `json:"description"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Recommendation entries are written by an external recommender and are
// read-only here.
type Recommendation struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Store     string  `json:"store"`
	Reason    string  `json:"reason"`
}
