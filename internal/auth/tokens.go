package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionTokenTTL = time.Hour
	resetTokenTTL   = 15 * time.Minute
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims is the identity carried inside a session token.
type SessionClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

// TokenIssuer signs and verifies the HS256 tokens used for sessions and
// password resets. The secret is injected at construction.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// IssueSessionToken signs a one-hour token carrying the user's identity.
func (t *TokenIssuer) IssueSessionToken(userID uuid.UUID, username, email string) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"userId":   userID.String(),
		"username": username,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      now.Add(sessionTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// IssueResetToken signs a fifteen-minute token carrying only the user ID.
// It is a narrower capability than a session token.
func (t *TokenIssuer) IssueResetToken(userID uuid.UUID) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"userId": userID.String(),
		"iat":    now.Unix(),
		"exp":    now.Add(resetTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifySessionToken checks signature and expiry and returns the embedded
// claims. Fails with ErrTokenExpired or ErrInvalidToken.
func (t *TokenIssuer) VerifySessionToken(token string) (*SessionClaims, error) {
	claims, err := t.parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := claimedUserID(claims)
	if err != nil {
		return nil, err
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	return &SessionClaims{UserID: userID, Username: username, Email: email}, nil
}

// VerifyResetToken checks signature and expiry and returns the user ID the
// reset token was issued for.
func (t *TokenIssuer) VerifyResetToken(token string) (uuid.UUID, error) {
	claims, err := t.parse(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claimedUserID(claims)
}

func (t *TokenIssuer) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func claimedUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, _ := claims["userId"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
