package handlers

import (
	"net/http"
	"strings"

	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

// StatsHandler serves the generated dashboard, experiment and social data.
type StatsHandler struct {
	data services.MockDataServiceInterface
}

func NewStatsHandler(data services.MockDataServiceInterface) *StatsHandler {
	return &StatsHandler{data: data}
}

type ChartResponse struct {
	Metric string              `json:"metric"`
	Points []models.ChartPoint `json:"points"`
}

type UsersResponse struct {
	Users []models.Profile `json:"users"`
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.data.Stats())
}

func (h *StatsHandler) Chart(w http.ResponseWriter, r *http.Request) {
	metric := strings.TrimSpace(r.PathValue("metric"))
	if metric == "" {
		writeError(w, http.StatusBadRequest, "Metric is required")
		return
	}
	writeJSON(w, http.StatusOK, ChartResponse{Metric: metric, Points: h.data.Chart(metric)})
}

func (h *StatsHandler) HealthFactors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.HealthFactor{"factors": h.data.HealthFactors()})
}

func (h *StatsHandler) Experiments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.Experiment{"experiments": h.data.Experiments()})
}

func (h *StatsHandler) Following(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UsersResponse{Users: h.data.FollowingUsers()})
}

func (h *StatsHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > 100 {
		writeError(w, http.StatusBadRequest, "Search query is too long")
		return
	}
	writeJSON(w, http.StatusOK, UsersResponse{Users: h.data.SearchUsers(query)})
}
