package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/HammerMeetNail/dailycheck/internal/config"
)

func mockGarminConfig() config.GarminConfig {
	return config.GarminConfig{
		ClientID:              config.GarminPlaceholderClientID,
		AuthorizationEndpoint: "https://connect.garmin.com/oauthConfirm",
		RedirectURI:           "dailycheck://auth",
	}
}

func TestGarminAuthService_MockMode(t *testing.T) {
	svc := NewGarminAuthService(mockGarminConfig(), testKeys(t).TokenSigning)

	if !svc.Mock() {
		t.Fatal("expected mock mode with placeholder client id")
	}
	if _, err := svc.AuthorizationURL(); !errors.Is(err, ErrGarminNotConfigured) {
		t.Errorf("expected ErrGarminNotConfigured, got %v", err)
	}

	result, err := svc.MockAuthenticate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || !result.Mock {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.RefreshToken != "mock_refresh_token" {
		t.Errorf("unexpected refresh token %q", result.RefreshToken)
	}

	subject, err := svc.Subject(result.AccessToken)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "garmin-mock-user" {
		t.Errorf("unexpected subject %q", subject)
	}
}

func TestGarminAuthService_MockDelayRespectsContext(t *testing.T) {
	svc := NewGarminAuthService(mockGarminConfig(), testKeys(t).TokenSigning)
	svc.SetMockDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.MockAuthenticate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGarminAuthService_AuthorizationURL(t *testing.T) {
	cfg := mockGarminConfig()
	cfg.ClientID = "client-123"
	svc := NewGarminAuthService(cfg, testKeys(t).TokenSigning)

	raw, err := svc.AuthorizationURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	if !strings.HasPrefix(raw, "https://connect.garmin.com/oauthConfirm?") {
		t.Errorf("unexpected url %q", raw)
	}
	if u.Query().Get("oauth_consumer_key") != "client-123" {
		t.Errorf("unexpected consumer key %q", u.Query().Get("oauth_consumer_key"))
	}
	if u.Query().Get("oauth_callback") != "dailycheck://auth" {
		t.Errorf("unexpected callback %q", u.Query().Get("oauth_callback"))
	}
}

func TestGarminAuthService_Exchange(t *testing.T) {
	cfg := mockGarminConfig()
	cfg.ClientID = "client-123"
	svc := NewGarminAuthService(cfg, testKeys(t).TokenSigning)
	ctx := context.Background()

	if _, err := svc.Exchange(ctx, "tok", ""); !errors.Is(err, ErrGarminExchange) {
		t.Errorf("expected ErrGarminExchange, got %v", err)
	}

	result, err := svc.Exchange(ctx, "tok", "verifier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Mock {
		t.Error("exchange result should not be marked mock")
	}

	subject, err := svc.Subject(result.AccessToken)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "garmin:tok" {
		t.Errorf("unexpected subject %q", subject)
	}

	if _, err := svc.Subject(result.RefreshToken); !errors.Is(err, ErrGarminInvalidToken) {
		t.Errorf("refresh token must not be accepted as access token, got %v", err)
	}
}

func TestGarminAuthService_Subject_Rejects(t *testing.T) {
	svc := NewGarminAuthService(mockGarminConfig(), testKeys(t).TokenSigning)
	other := NewGarminAuthService(mockGarminConfig(), []byte("another-key"))

	foreign, err := other.MockAuthenticate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Subject(foreign.AccessToken); !errors.Is(err, ErrGarminInvalidToken) {
		t.Errorf("expected signature mismatch to be rejected, got %v", err)
	}

	if _, err := svc.Subject("not-a-jwt"); !errors.Is(err, ErrGarminInvalidToken) {
		t.Errorf("expected garbage to be rejected, got %v", err)
	}

	past := NewGarminAuthService(mockGarminConfig(), testKeys(t).TokenSigning)
	past.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, _ := past.MockAuthenticate(context.Background())
	if _, err := svc.Subject(expired.AccessToken); !errors.Is(err, ErrGarminInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}
