package handlers

import (
	"context"

	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

type mockAuthService struct {
	LoginWithCredentialsFunc func(ctx context.Context, email, password string) (string, *models.Session, error)
	CreateSessionFunc        func(ctx context.Context, subject string, provider models.AuthProvider) (string, *models.Session, error)
	ValidateSessionFunc      func(ctx context.Context, token string) (*models.Session, error)
	DeleteSessionFunc        func(ctx context.Context, token string) error
}

func (m *mockAuthService) LoginWithCredentials(ctx context.Context, email, password string) (string, *models.Session, error) {
	if m.LoginWithCredentialsFunc != nil {
		return m.LoginWithCredentialsFunc(ctx, email, password)
	}
	return "", nil, nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, subject string, provider models.AuthProvider) (string, *models.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, subject, provider)
	}
	return "", nil, nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, services.ErrSessionNotFound
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

type mockGarminService struct {
	MockFunc             func() bool
	AuthorizationURLFunc func() (string, error)
	MockAuthenticateFunc func(ctx context.Context) (*models.GarminAuthResult, error)
	ExchangeFunc         func(ctx context.Context, oauthToken, oauthVerifier string) (*models.GarminAuthResult, error)
	SubjectFunc          func(accessToken string) (string, error)
}

func (m *mockGarminService) Mock() bool {
	if m.MockFunc != nil {
		return m.MockFunc()
	}
	return true
}

func (m *mockGarminService) AuthorizationURL() (string, error) {
	if m.AuthorizationURLFunc != nil {
		return m.AuthorizationURLFunc()
	}
	return "", services.ErrGarminNotConfigured
}

func (m *mockGarminService) MockAuthenticate(ctx context.Context) (*models.GarminAuthResult, error) {
	if m.MockAuthenticateFunc != nil {
		return m.MockAuthenticateFunc(ctx)
	}
	return nil, nil
}

func (m *mockGarminService) Exchange(ctx context.Context, oauthToken, oauthVerifier string) (*models.GarminAuthResult, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, oauthToken, oauthVerifier)
	}
	return nil, nil
}

func (m *mockGarminService) Subject(accessToken string) (string, error) {
	if m.SubjectFunc != nil {
		return m.SubjectFunc(accessToken)
	}
	return "", services.ErrGarminInvalidToken
}

type mockCheckInService struct {
	SubmitFunc func(ctx context.Context, answers map[string]bool) (*models.CheckIn, error)
	LatestFunc func(ctx context.Context) (*models.CheckIn, error)
}

func (m *mockCheckInService) Submit(ctx context.Context, answers map[string]bool) (*models.CheckIn, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, answers)
	}
	return nil, nil
}

func (m *mockCheckInService) Latest(ctx context.Context) (*models.CheckIn, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, services.ErrNoCheckIn
}

type mockMockDataService struct {
	StatsFunc          func() models.Stats
	ChartFunc          func(metric string) []models.ChartPoint
	HealthFactorsFunc  func() []models.HealthFactor
	ExperimentsFunc    func() []models.Experiment
	FollowingUsersFunc func() []models.Profile
	SearchUsersFunc    func(query string) []models.Profile
}

func (m *mockMockDataService) Stats() models.Stats {
	if m.StatsFunc != nil {
		return m.StatsFunc()
	}
	return models.Stats{}
}

func (m *mockMockDataService) Chart(metric string) []models.ChartPoint {
	if m.ChartFunc != nil {
		return m.ChartFunc(metric)
	}
	return nil
}

func (m *mockMockDataService) HealthFactors() []models.HealthFactor {
	if m.HealthFactorsFunc != nil {
		return m.HealthFactorsFunc()
	}
	return nil
}

func (m *mockMockDataService) Experiments() []models.Experiment {
	if m.ExperimentsFunc != nil {
		return m.ExperimentsFunc()
	}
	return nil
}

func (m *mockMockDataService) FollowingUsers() []models.Profile {
	if m.FollowingUsersFunc != nil {
		return m.FollowingUsersFunc()
	}
	return nil
}

func (m *mockMockDataService) SearchUsers(query string) []models.Profile {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(query)
	}
	return nil
}

type mockToggleObserver struct {
	changed []bool
}

func (m *mockToggleObserver) ObserveToggle(changed bool) {
	m.changed = append(m.changed, changed)
}
