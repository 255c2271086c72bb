package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

func TestNewTestRequestWithJSON(t *testing.T) {
	req := NewTestRequestWithJSON(t, http.MethodPost, "/api/journal/checkins", map[string]any{"answers": map[string]bool{"2": true}})
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type json, got %q", ct)
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	AssertContains(t, string(body), `"2":true`, "body")
}

func TestAssertStatusCodeAndJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusCreated)
	_, _ = rr.WriteString(`{"changed":true}`)

	AssertStatusCode(t, rr, http.StatusCreated)
	AssertJSONContains(t, rr.Body.Bytes(), "changed", true)
}

func TestNewSession(t *testing.T) {
	s := NewSession(RandomEmail(), models.ProviderCredentials)
	if s.ID == "" || !s.ExpiresAt.After(s.CreatedAt) {
		t.Errorf("unexpected session %+v", s)
	}
	AssertContains(t, s.Subject, "@test.com", "subject")
}
