package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordReset records an outstanding reset token, keyed by its hash.
// Consuming a reset deletes the row, making each token single-use even
// though the JWT itself stays verifiable until expiry.
type PasswordReset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (p *PasswordReset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ResetRepository struct {
	db *gorm.DB
}

func NewResetRepository(db *gorm.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) Create(userID uuid.UUID, token string, expiresAt time.Time) error {
	return r.db.Create(&PasswordReset{
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: expiresAt,
	}).Error
}

// Consume looks up the unexpired reset record for token and deletes it.
func (r *ResetRepository) Consume(token string) error {
	var pr PasswordReset
	if err := r.db.Where("token_hash = ? AND expires_at > ?", hashToken(token), time.Now()).First(&pr).Error; err != nil {
		return err
	}
	return r.db.Delete(&pr).Error
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
