package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

var (
	ErrUnansweredQuestions = errors.New("please answer all questions")
	ErrUnknownQuestion     = errors.New("answer for a question not in the journal")
	ErrNoCheckIn           = errors.New("no check-in submitted yet")
)

// ActiveQuestions is the projection the check-in form is built from.
type ActiveQuestions interface {
	Active() []models.JournalQuestion
}

// CheckInService validates daily journal answers against the active
// questions and keeps the most recent submission in memory.
type CheckInService struct {
	questions ActiveQuestions
	now       func() time.Time

	mu     sync.RWMutex
	latest *models.CheckIn
}

func NewCheckInService(questions ActiveQuestions) *CheckInService {
	return &CheckInService{questions: questions, now: time.Now}
}

func (s *CheckInService) Submit(ctx context.Context, answers map[string]bool) (*models.CheckIn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	active := s.questions.Active()
	byID := make(map[string]models.JournalQuestion, len(active))
	for _, q := range active {
		byID[q.ID] = q
	}

	var unknown []string
	for id := range answers {
		if _, ok := byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, strings.Join(unknown, ", "))
	}

	var missing []string
	checkIn := &models.CheckIn{
		ID:          uuid.New(),
		SubmittedAt: s.now().UTC(),
		Answers:     make([]models.CheckInAnswer, 0, len(active)),
	}
	for _, q := range active {
		answer, ok := answers[q.ID]
		if !ok {
			missing = append(missing, q.ID)
			continue
		}
		checkIn.Answers = append(checkIn.Answers, models.CheckInAnswer{
			QuestionID: q.ID,
			Category:   q.Category,
			Text:       q.Subtitle,
			Answer:     answer,
		})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrUnansweredQuestions, strings.Join(missing, ", "))
	}

	s.mu.Lock()
	s.latest = checkIn
	s.mu.Unlock()

	return checkIn, nil
}

func (s *CheckInService) Latest(ctx context.Context) (*models.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoCheckIn
	}
	copied := *s.latest
	copied.Answers = append([]models.CheckInAnswer(nil), s.latest.Answers...)
	return &copied, nil
}
