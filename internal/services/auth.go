package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

const sessionDuration = 30 * 24 * time.Hour // 30 days

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	sessions SessionStore
	hashKey  []byte
	now      func() time.Time
}

func NewAuthService(sessions SessionStore, hashKey []byte) *AuthService {
	return &AuthService{
		sessions: sessions,
		hashKey:  hashKey,
		now:      time.Now,
	}
}

// LoginWithCredentials is the credential stub: any non-empty email and
// password pair is accepted.
func (s *AuthService) LoginWithCredentials(ctx context.Context, email, password string) (string, *models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !strings.Contains(email, "@") {
		return "", nil, ErrInvalidCredentials
	}
	return s.CreateSession(ctx, email, models.ProviderCredentials)
}

// GenerateSessionToken returns a random token and its keyed hash.
func (s *AuthService) GenerateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(bytes)
	return token, s.hashToken(token), nil
}

func (s *AuthService) hashToken(token string) string {
	mac := hmac.New(sha256.New, s.hashKey)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *AuthService) CreateSession(ctx context.Context, subject string, provider models.AuthProvider) (string, *models.Session, error) {
	token, tokenHash, err := s.GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}

	now := s.now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		Subject:   subject,
		Provider:  provider,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionDuration),
	}
	if err := s.sessions.Put(ctx, tokenHash, session, sessionDuration); err != nil {
		return "", nil, fmt.Errorf("creating session: %w", err)
	}
	return token, &session, nil
}

// ValidateSession resolves a token and slides its expiry forward.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	tokenHash := s.hashToken(token)

	session, err := s.sessions.Get(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(ctx, tokenHash, sessionDuration); err == nil {
		session.ExpiresAt = s.now().UTC().Add(sessionDuration)
	}
	return session, nil
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, s.hashToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
