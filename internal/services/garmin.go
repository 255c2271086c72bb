package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HammerMeetNail/dailycheck/internal/config"
	"github.com/HammerMeetNail/dailycheck/internal/models"
)

const (
	garminIssuer           = "dailycheck/garmin-stub"
	garminMockSubject      = "garmin-mock-user"
	garminMockRefreshToken = "mock_refresh_token"
	garminAccessTTL        = 24 * time.Hour
	garminRefreshTTL       = 90 * 24 * time.Hour
)

var (
	ErrGarminNotConfigured = errors.New("garmin oauth is not configured")
	ErrGarminExchange      = errors.New("failed to exchange tokens")
	ErrGarminInvalidToken  = errors.New("invalid garmin token")
)

type garminClaims struct {
	Kind string `json:"kind"`
	Mock bool   `json:"mock,omitempty"`
	jwt.RegisteredClaims
}

// GarminAuthService stands in for Garmin Connect OAuth. No request is ever
// sent to Garmin: when credentials are missing it signs a mock token, and
// otherwise it builds the authorization URL and signs tokens for any
// callback that carries both an oauth token and verifier.
type GarminAuthService struct {
	cfg        config.GarminConfig
	signingKey []byte
	delay      time.Duration
	now        func() time.Time
}

func NewGarminAuthService(cfg config.GarminConfig, signingKey []byte) *GarminAuthService {
	return &GarminAuthService{
		cfg:        cfg,
		signingKey: signingKey,
		now:        time.Now,
	}
}

// SetMockDelay simulates the provider round trip in mock mode.
func (s *GarminAuthService) SetMockDelay(d time.Duration) {
	s.delay = d
}

func (s *GarminAuthService) Mock() bool {
	return s.cfg.Mock()
}

func (s *GarminAuthService) AuthorizationURL() (string, error) {
	if s.Mock() {
		return "", ErrGarminNotConfigured
	}
	u, err := url.Parse(s.cfg.AuthorizationEndpoint)
	if err != nil {
		return "", fmt.Errorf("parsing authorization endpoint: %w", err)
	}
	q := u.Query()
	q.Set("oauth_consumer_key", s.cfg.ClientID)
	q.Set("oauth_callback", s.cfg.RedirectURI)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MockAuthenticate signs in as the mock Garmin user.
func (s *GarminAuthService) MockAuthenticate(ctx context.Context) (*models.GarminAuthResult, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	access, err := s.sign(garminMockSubject, "access", true, garminAccessTTL)
	if err != nil {
		return nil, err
	}
	return &models.GarminAuthResult{
		Success:      true,
		AccessToken:  access,
		RefreshToken: garminMockRefreshToken,
		Mock:         true,
	}, nil
}

// Exchange trades the callback parameters for a token pair.
func (s *GarminAuthService) Exchange(ctx context.Context, oauthToken, oauthVerifier string) (*models.GarminAuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if oauthToken == "" || oauthVerifier == "" {
		return nil, ErrGarminExchange
	}

	subject := "garmin:" + oauthToken
	access, err := s.sign(subject, "access", false, garminAccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(subject, "refresh", false, garminRefreshTTL)
	if err != nil {
		return nil, err
	}
	return &models.GarminAuthResult{
		Success:      true,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Subject validates an access token issued by this service and returns its
// subject.
func (s *GarminAuthService) Subject(accessToken string) (string, error) {
	claims := &garminClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(garminIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrGarminInvalidToken, err)
	}
	if claims.Kind != "access" {
		return "", ErrGarminInvalidToken
	}
	return claims.Subject, nil
}

func (s *GarminAuthService) sign(subject, kind string, mock bool, ttl time.Duration) (string, error) {
	now := s.now()
	claims := garminClaims{
		Kind: kind,
		Mock: mock,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    garminIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing garmin token: %w", err)
	}
	return signed, nil
}
