package models

import "time"

// Profile is another user shown on the stats and search screens.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	AvatarColor string `json:"avatar_color"`
	Streak      int    `json:"streak"`
	HealthScore int    `json:"health_score"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type AuthProvider string

const (
	ProviderCredentials AuthProvider = "credentials"
	ProviderGarmin      AuthProvider = "garmin"
)

// Session is a signed-in device.
type Session struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Provider  AuthProvider `json:"provider"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// GarminAuthResult mirrors what the client expects back from Garmin login.
type GarminAuthResult struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Error        string `json:"error,omitempty"`
	Mock         bool   `json:"mock"`
}
