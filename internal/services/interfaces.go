package services

import (
	"context"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

// AuthServiceInterface defines the contract for session operations.
type AuthServiceInterface interface {
	LoginWithCredentials(ctx context.Context, email, password string) (string, *models.Session, error)
	CreateSession(ctx context.Context, subject string, provider models.AuthProvider) (string, *models.Session, error)
	ValidateSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// GarminAuthServiceInterface defines the contract for the Garmin login stub.
type GarminAuthServiceInterface interface {
	Mock() bool
	AuthorizationURL() (string, error)
	MockAuthenticate(ctx context.Context) (*models.GarminAuthResult, error)
	Exchange(ctx context.Context, oauthToken, oauthVerifier string) (*models.GarminAuthResult, error)
	Subject(accessToken string) (string, error)
}

// CheckInServiceInterface defines the contract for daily check-ins.
type CheckInServiceInterface interface {
	Submit(ctx context.Context, answers map[string]bool) (*models.CheckIn, error)
	Latest(ctx context.Context) (*models.CheckIn, error)
}

// MockDataServiceInterface defines the contract for generated screen data.
type MockDataServiceInterface interface {
	Stats() models.Stats
	Chart(metric string) []models.ChartPoint
	HealthFactors() []models.HealthFactor
	Experiments() []models.Experiment
	FollowingUsers() []models.Profile
	SearchUsers(query string) []models.Profile
}

var (
	_ AuthServiceInterface       = (*AuthService)(nil)
	_ GarminAuthServiceInterface = (*GarminAuthService)(nil)
	_ CheckInServiceInterface    = (*CheckInService)(nil)
	_ MockDataServiceInterface   = (*MockDataService)(nil)
)
