package profile

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopsense/server/internal/user"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

type UserStore interface {
	FindByID(id uuid.UUID) (*user.User, error)
	FindByEmail(email string) (*user.User, error)
	Update(u *user.User) error
}

// Profile is the editable slice of a user record.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(userID uuid.UUID) (*Profile, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return profileOf(u), nil
}

// UpdateProfile overwrites the editable fields. Changing the email
// re-checks uniqueness against other accounts, same as signup.
func (s *Service) UpdateProfile(userID uuid.UUID, updated Profile) (*Profile, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if updated.Email != "" && updated.Email != u.Email {
		if other, _ := s.users.FindByEmail(updated.Email); other != nil && other.ID != u.ID {
			return nil, ErrEmailTaken
		}
		u.Email = updated.Email
	}
	if updated.Username != "" {
		u.Username = updated.Username
	}
	u.Phone = updated.Phone
	u.Location = updated.Location
	u.Bio = updated.Bio
	if updated.Avatar != "" {
		u.AvatarURL = updated.Avatar
	}

	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

func (s *Service) UpdateAvatar(userID uuid.UUID, avatarURL string) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return s.users.Update(u)
}

func profileOf(u *user.User) *Profile {
	return &Profile{
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
		Bio:      u.Bio,
		Avatar:   u.AvatarURL,
	}
}
