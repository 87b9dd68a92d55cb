package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopsense/server/internal/user"
)

// Accounts created through Google login get this placeholder password so
// the hash column is never empty. It can never be used to log in because
// password changes are blocked for Google accounts.
const googlePlaceholderPassword = "shopsense_google_default_password"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGoogleAccount      = errors.New("password changes are not allowed for Google accounts")
	ErrCurrentPassword    = errors.New("current password is incorrect")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrProvider           = errors.New("identity provider request failed")
	ErrDelivery           = errors.New("reset email delivery failed")
)

type UserStore interface {
	Create(u *user.User) error
	FindByEmail(email string) (*user.User, error)
	FindByID(id uuid.UUID) (*user.User, error)
	Update(u *user.User) error
}

type ResetStore interface {
	Create(userID uuid.UUID, token string, expiresAt time.Time) error
	Consume(token string) error
}

type IdentityProvider interface {
	FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Session is a freshly issued token together with the identity it proves.
type Session struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

type Service struct {
	users     UserStore
	resets    ResetStore
	tokens    *TokenIssuer
	google    IdentityProvider
	mailer    Mailer
	clientURL string
}

func NewService(users UserStore, resets ResetStore, tokens *TokenIssuer, google IdentityProvider, mailer Mailer, clientURL string) *Service {
	return &Service{
		users:     users,
		resets:    resets,
		tokens:    tokens,
		google:    google,
		mailer:    mailer,
		clientURL: clientURL,
	}
}

// Signup creates a local account. Fails with ErrUserExists if the email is
// already registered.
func (s *Service) Signup(username, email, password string) (*user.Public, error) {
	if existing, _ := s.users.FindByEmail(email); existing != nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}

	pub := u.Public()
	return &pub, nil
}

// Login verifies the credentials and issues a session token. Lookup
// failure and password mismatch report the same error so a caller cannot
// probe which emails are registered.
func (s *Service) Login(email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(u)
}

// GoogleLogin resolves the caller-supplied access token to a Google
// profile and finds or creates the matching account. A fresh session token
// is always issued.
func (s *Service) GoogleLogin(ctx context.Context, accessToken string) (*Session, error) {
	profile, err := s.google.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: no email in profile", ErrProvider)
	}

	u, err := s.users.FindByEmail(profile.Email)
	if err != nil {
		hash, err := HashPassword(googlePlaceholderPassword)
		if err != nil {
			return nil, err
		}

		username := profile.Name
		if username == "" {
			username = "Google User"
		}

		u = &user.User{
			Username:        username,
			Email:           profile.Email,
			PasswordHash:    hash,
			IsGoogleAccount: true,
			AvatarURL:       profile.Picture,
		}
		if err := s.users.Create(u); err != nil {
			return nil, err
		}
	}

	return s.issueSession(u)
}

// ChangePassword swaps the stored hash after verifying the current
// password. Google accounts are refused. Already issued session tokens
// stay valid until they expire.
func (s *Service) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if u.IsGoogleAccount {
		return ErrGoogleAccount
	}
	if !CheckPassword(currentPassword, u.PasswordHash) {
		return ErrCurrentPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.users.Update(u)
}

// RequestPasswordReset issues a reset token, records it for single-use
// redemption, and mails the reset link.
func (s *Service) RequestPasswordReset(email string) error {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	token, err := s.tokens.IssueResetToken(u.ID)
	if err != nil {
		return err
	}
	if err := s.resets.Create(u.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	body := fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Click the link below to reset your password (expires in 15 minutes):</p>
<a href="%s">%s</a>`, link, link)

	if err := s.mailer.Send(u.Email, "Password Reset Request", body); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// ResetPassword redeems a reset token and stores the new password hash.
// Tokens are single-use: redemption consumes the stored record, so a
// replayed token fails even before its expiry.
func (s *Service) ResetPassword(token, newPassword string) error {
	userID, err := s.tokens.VerifyResetToken(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if err := s.resets.Consume(token); err != nil {
		return ErrInvalidResetToken
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.users.Update(u)
}

func (s *Service) issueSession(u *user.User) (*Session, error) {
	token, err := s.tokens.IssueSessionToken(u.ID, u.Username, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u.Public()}, nil
}
