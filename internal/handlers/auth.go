package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/HammerMeetNail/dailycheck/internal/logging"
	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

const (
	SessionCookieName = "session_token"
	cookieMaxAge      = 30 * 24 * 60 * 60 // 30 days in seconds
)

type AuthHandler struct {
	authService   services.AuthServiceInterface
	garminService services.GarminAuthServiceInterface
	secure        bool // Use secure cookies (HTTPS only)
	log           *logging.Logger
}

func NewAuthHandler(authService services.AuthServiceInterface, garminService services.GarminAuthServiceInterface, secure bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		garminService: garminService,
		secure:        secure,
		log:           logging.Default.Component("auth"),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token as well as setting the cookie so
// the mobile client can use a bearer header instead.
type AuthResponse struct {
	Session *models.Session `json:"session,omitempty"`
	Token   string          `json:"token,omitempty"`
	Mock    bool            `json:"mock,omitempty"`
	Message string          `json:"message,omitempty"`
}

type GarminStartResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, session, err := h.authService.LoginWithCredentials(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Please enter both email and password")
		return
	}
	if err != nil {
		h.log.Error("creating session", logging.Fields{"error": err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, AuthResponse{Session: session, Token: token})
}

// Garmin starts a Garmin login. Without client credentials the stub signs the
// user in immediately; otherwise the client is sent to the authorization page.
func (h *AuthHandler) Garmin(w http.ResponseWriter, r *http.Request) {
	if !h.garminService.Mock() {
		authURL, err := h.garminService.AuthorizationURL()
		if err != nil {
			h.log.Error("building garmin authorization url", logging.Fields{"error": err})
			writeError(w, http.StatusInternalServerError, "Garmin authentication failed")
			return
		}
		writeJSON(w, http.StatusOK, GarminStartResponse{AuthorizationURL: authURL})
		return
	}

	result, err := h.garminService.MockAuthenticate(r.Context())
	if err != nil {
		h.log.Warn("mock garmin login", logging.Fields{"error": err})
		writeError(w, http.StatusBadGateway, "Garmin authentication failed")
		return
	}
	h.completeGarmin(w, r, result)
}

func (h *AuthHandler) GarminCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.garminService.Exchange(r.Context(), query.Get("oauth_token"), query.Get("oauth_verifier"))
	if errors.Is(err, services.ErrGarminExchange) {
		writeError(w, http.StatusBadRequest, "Missing OAuth token or verifier")
		return
	}
	if err != nil {
		h.log.Error("garmin token exchange", logging.Fields{"error": err})
		writeError(w, http.StatusBadGateway, "Garmin authentication failed")
		return
	}
	h.completeGarmin(w, r, result)
}

func (h *AuthHandler) completeGarmin(w http.ResponseWriter, r *http.Request, result *models.GarminAuthResult) {
	subject, err := h.garminService.Subject(result.AccessToken)
	if err != nil {
		h.log.Error("reading garmin token", logging.Fields{"error": err})
		writeError(w, http.StatusBadGateway, "Garmin authentication failed")
		return
	}

	token, session, err := h.authService.CreateSession(r.Context(), subject, models.ProviderGarmin)
	if err != nil {
		h.log.Error("creating session", logging.Fields{"error": err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, AuthResponse{Session: session, Token: token, Mock: result.Mock})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := GetTokenFromContext(r.Context())
	if token == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token != "" {
		if err := h.authService.DeleteSession(r.Context(), token); err != nil {
			h.log.Warn("deleting session", logging.Fields{"error": err})
		}
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, AuthResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Session: session})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
	})
}

// BearerToken extracts a token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
