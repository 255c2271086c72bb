// Package journal holds the in-memory journal question catalog and the views
// that project it for the customize and daily check-in screens.
package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

// QuestionStore is the single source of truth for which journal questions are
// enabled. The catalog is fixed at construction; only IsActive changes.
//
// Listeners run synchronously on the toggling goroutine, outside the store
// lock, so they may call back into the store.
type QuestionStore struct {
	mu        sync.Mutex
	questions []models.JournalQuestion
	index     map[string]int

	nextHandle uint64
	order      []uint64
	listeners  map[uint64]func()
}

// NewQuestionStore builds a store over a copy of catalog. It panics on a
// duplicate id since the catalog is a closed, compile-time set.
func NewQuestionStore(catalog []models.JournalQuestion) *QuestionStore {
	s := &QuestionStore{
		questions: slices.Clone(catalog),
		index:     make(map[string]int, len(catalog)),
		listeners: make(map[uint64]func()),
	}
	for i, q := range s.questions {
		if _, dup := s.index[q.ID]; dup {
			panic(fmt.Sprintf("journal: duplicate question id %q", q.ID))
		}
		s.index[q.ID] = i
	}
	return s
}

// Health fails when the store was built over an empty catalog.
func (s *QuestionStore) Health(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return errors.New("question catalog is empty")
	}
	return nil
}

// All returns the full catalog in definition order.
func (s *QuestionStore) All() []models.JournalQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.questions)
}

// Active returns the questions with IsActive set, in catalog order.
func (s *QuestionStore) Active() []models.JournalQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Filter(s.questions, func(q models.JournalQuestion, _ int) bool {
		return q.IsActive
	})
}

// ActiveCount returns the size of the active subset.
func (s *QuestionStore) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCountLocked()
}

func (s *QuestionStore) activeCountLocked() int {
	return lo.CountBy(s.questions, func(q models.JournalQuestion) bool {
		return q.IsActive
	})
}

// Get looks up a single question by id.
func (s *QuestionStore) Get(id string) (models.JournalQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.JournalQuestion{}, false
	}
	return s.questions[i], true
}

// ToggleResult is the state a toggle produced, read under the same lock as
// the mutation.
type ToggleResult struct {
	Question    models.JournalQuestion
	ActiveCount int
}

// Toggle flips IsActive for id and notifies subscribers before returning.
// An unknown id is a no-op and reports false.
func (s *QuestionStore) Toggle(id string) bool {
	_, ok := s.ToggleWithResult(id)
	return ok
}

// ToggleWithResult is Toggle that also reports the flipped question and the
// active count as of this toggle, unaffected by later concurrent toggles.
func (s *QuestionStore) ToggleWithResult(id string) (ToggleResult, bool) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return ToggleResult{}, false
	}
	s.questions[i].IsActive = !s.questions[i].IsActive
	result := ToggleResult{
		Question:    s.questions[i],
		ActiveCount: s.activeCountLocked(),
	}
	handles := slices.Clone(s.order)
	s.mu.Unlock()

	s.notify(handles)
	return result, true
}

// Subscribe registers listener for every successful toggle. The returned
// function removes exactly that registration and is safe to call repeatedly.
func (s *QuestionStore) Subscribe(listener func()) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextHandle++
	handle := s.nextHandle
	s.listeners[handle] = listener
	s.order = append(s.order, handle)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(handle) })
	}
}

// Subscribers returns the number of registered listeners.
func (s *QuestionStore) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *QuestionStore) remove(handle uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listeners[handle]; !ok {
		return
	}
	delete(s.listeners, handle)
	if i := slices.Index(s.order, handle); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// notify walks the handles registered at mutation time. A handle removed
// mid-round is skipped.
func (s *QuestionStore) notify(handles []uint64) {
	for _, h := range handles {
		s.mu.Lock()
		listener, ok := s.listeners[h]
		s.mu.Unlock()
		if ok {
			listener()
		}
	}
}
