package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/HammerMeetNail/dailycheck/internal/config"
	"github.com/HammerMeetNail/dailycheck/internal/handlers"
	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/logging"
	"github.com/HammerMeetNail/dailycheck/internal/metrics"
	"github.com/HammerMeetNail/dailycheck/internal/middleware"
	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

type testServer struct {
	*httptest.Server
	store *journal.QuestionStore
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()

	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	keys, err := services.DeriveKeys(cfg.Auth.Secret)
	if err != nil {
		t.Fatalf("deriving keys: %v", err)
	}

	store := journal.NewQuestionStore(models.DefaultCatalog())
	customize := journal.NewCustomizeView(store)
	daily := journal.NewJournalView(store)
	t.Cleanup(func() {
		customize.Close()
		daily.Close()
	})

	router := NewRouter(Deps{
		Config:    cfg,
		Logger:    logging.New().SetOutput(io.Discard),
		Metrics:   metrics.New(),
		Store:     store,
		Customize: customize,
		Daily:     daily,
		Auth:      services.NewAuthService(services.NewMemorySessionStore(), keys.SessionHash),
		Garmin:    services.NewGarminAuthService(cfg.Garmin, keys.TokenSigning),
		CheckIns:  services.NewCheckInService(store),
		Data:      services.NewMockDataService(rand.New(rand.NewSource(1))),
		Counter:   middleware.NewMemoryCounter(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", handlers.LoginRequest{Email: "runner@example.com", Password: "pw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var out handlers.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding login: %v", err)
	}
	return out.Token
}

func TestRouter_RequiresSession(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/journal/questions", "/api/stats", "/api/experiments", "/api/users/following", "/api/auth/me"} {
		if resp := srv.do(t, http.MethodGet, path, "", nil); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
	if resp := srv.do(t, http.MethodGet, "/live", "", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("/live should be public, got %d", resp.StatusCode)
	}
}

func TestRouter_ToggleFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t)

	resp := srv.do(t, http.MethodPost, "/api/journal/questions/2/toggle", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", resp.StatusCode)
	}
	var toggled handlers.ToggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&toggled); err != nil {
		t.Fatalf("decoding toggle: %v", err)
	}
	if !toggled.Changed || toggled.ActiveCount != 7 {
		t.Errorf("unexpected toggle response %+v", toggled)
	}

	resp = srv.do(t, http.MethodGet, "/api/journal/questions/active", token, nil)
	var snap journal.JournalSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding active: %v", err)
	}
	if snap.Total != 7 {
		t.Errorf("expected 7 prompts, got %d", snap.Total)
	}

	resp = srv.do(t, http.MethodGet, "/metrics", "", nil)
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `dailycheck_journal_toggles_total{result="changed"} 1`) {
		t.Error("expected toggle counter in metrics output")
	}
	if !strings.Contains(string(raw), `route="POST /api/journal/questions/{id}/toggle"`) {
		t.Error("expected routed pattern as metrics label")
	}
}

func TestRouter_LogoutInvalidatesToken(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t)

	if resp := srv.do(t, http.MethodPost, "/api/auth/logout", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	if resp := srv.do(t, http.MethodGet, "/api/auth/me", token, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected token to be rejected after logout, got %d", resp.StatusCode)
	}
}

func TestRouter_LoginRateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.LoginRateLimit = 2
	})

	var last int
	for i := 0; i < 3; i++ {
		last = srv.do(t, http.MethodPost, "/api/auth/login", "", handlers.LoginRequest{Email: "a@b.c", Password: "x"}).StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected third login to be limited, got %d", last)
	}
}

func TestRouter_GarminMockLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := srv.do(t, http.MethodPost, "/api/auth/garmin", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out handlers.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !out.Mock || out.Session == nil || out.Session.Provider != models.ProviderGarmin {
		t.Errorf("unexpected garmin response %+v", out)
	}
}

func TestRouter_EventStream(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/journal/events"
	if _, err := websocket.Dial(wsURL, "", srv.URL); err == nil {
		t.Fatal("expected unauthenticated websocket to be rejected")
	}

	cfg, err := websocket.NewConfig(wsURL, srv.URL)
	if err != nil {
		t.Fatalf("ws config: %v", err)
	}
	cfg.Header = http.Header{"Authorization": []string{"Bearer " + token}}
	conn, err := websocket.DialConfig(cfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var event handlers.JournalEvent
	if err := websocket.JSON.Receive(conn, &event); err != nil {
		t.Fatalf("receive snapshot: %v", err)
	}

	srv.store.Toggle("5")
	if err := websocket.JSON.Receive(conn, &event); err != nil {
		t.Fatalf("receive change: %v", err)
	}
	if event.Type != "questions_changed" || event.ActiveCount != 9 {
		t.Errorf("unexpected event %+v", event)
	}
}
