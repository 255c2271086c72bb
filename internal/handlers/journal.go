package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/logging"
	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

// ToggleObserver is told about every toggle request. Metrics implements it.
type ToggleObserver interface {
	ObserveToggle(changed bool)
}

type JournalHandler struct {
	store     *journal.QuestionStore
	customize *journal.CustomizeView
	daily     *journal.JournalView
	checkIns  services.CheckInServiceInterface
	observer  ToggleObserver
	log       *logging.Logger
}

func NewJournalHandler(store *journal.QuestionStore, customize *journal.CustomizeView, daily *journal.JournalView, checkIns services.CheckInServiceInterface, observer ToggleObserver) *JournalHandler {
	return &JournalHandler{
		store:     store,
		customize: customize,
		daily:     daily,
		checkIns:  checkIns,
		observer:  observer,
		log:       logging.Default.Component("journal"),
	}
}

type ToggleResponse struct {
	Changed     bool                    `json:"changed"`
	Question    *models.JournalQuestion `json:"question,omitempty"`
	ActiveCount int                     `json:"active_count"`
}

type CheckInRequest struct {
	Answers map[string]bool `json:"answers"`
}

// Questions serves the customize screen: the whole catalog, optionally
// narrowed by ?category= and ?q=.
func (h *JournalHandler) Questions(w http.ResponseWriter, r *http.Request) {
	tab := strings.TrimSpace(r.URL.Query().Get("category"))
	if tab != "" && tab != journal.TabAll && !models.Category(tab).Valid() {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	writeJSON(w, http.StatusOK, h.customize.Snapshot(journal.CustomizeFilter{
		Tab:   tab,
		Query: r.URL.Query().Get("q"),
	}))
}

// ActiveQuestions serves the daily check-in prompts grouped by category.
func (h *JournalHandler) ActiveQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.daily.Snapshot())
}

// Toggle flips one question. An id outside the catalog is not an error; the
// response just reports that nothing changed.
func (h *JournalHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	result, changed := h.customize.ToggleWithResult(id)
	if h.observer != nil {
		h.observer.ObserveToggle(changed)
	}

	response := ToggleResponse{Changed: changed}
	if changed {
		response.Question = &result.Question
		response.ActiveCount = result.ActiveCount
		h.log.Debug("question toggled", logging.Fields{"id": id, "active_count": response.ActiveCount})
	} else {
		response.ActiveCount = h.store.ActiveCount()
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *JournalHandler) SubmitCheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]bool{}
	}

	checkIn, err := h.checkIns.Submit(r.Context(), req.Answers)
	if errors.Is(err, services.ErrUnansweredQuestions) || errors.Is(err, services.ErrUnknownQuestion) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error("submitting check-in", logging.Fields{"error": err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, checkIn)
}

func (h *JournalHandler) LatestCheckIn(w http.ResponseWriter, r *http.Request) {
	checkIn, err := h.checkIns.Latest(r.Context())
	if errors.Is(err, services.ErrNoCheckIn) {
		writeError(w, http.StatusNotFound, "No check-in submitted yet")
		return
	}
	if err != nil {
		h.log.Error("loading latest check-in", logging.Fields{"error": err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, checkIn)
}
