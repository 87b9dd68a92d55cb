package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopsense/server/internal/user"
)

var errNotFound = errors.New("record not found")

type fakeUserStore struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*user.User)}
}

func (s *fakeUserStore) Create(u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *fakeUserStore) FindByEmail(email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errNotFound
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

type fakeResetStore struct {
	tokens map[string]uuid.UUID
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: make(map[string]uuid.UUID)}
}

func (s *fakeResetStore) Create(userID uuid.UUID, token string, expiresAt time.Time) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeResetStore) Consume(token string) error {
	if _, ok := s.tokens[token]; !ok {
		return errNotFound
	}
	delete(s.tokens, token)
	return nil
}

type fakeProvider struct {
	profile *GoogleProfile
	err     error
}

func (p *fakeProvider) FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
