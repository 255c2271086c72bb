package journal

import (
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

// TabAll selects every category in the customize view.
const TabAll = "ALL"

// CustomizeFilter narrows the customize view by category tab and search text.
type CustomizeFilter struct {
	Tab   string
	Query string
}

// CustomizeSnapshot is what the customize screen renders.
type CustomizeSnapshot struct {
	Questions   []models.JournalQuestion `json:"questions"`
	ActiveCount int                      `json:"active_count"`
	Total       int                      `json:"total"`
	Revision    uint64                   `json:"revision"`
}

// CustomizeView keeps a copy of the full catalog and redraws it whenever the
// store notifies.
type CustomizeView struct {
	store       *QuestionStore
	unsubscribe func()

	mu        sync.RWMutex
	questions []models.JournalQuestion
	revision  uint64
}

func NewCustomizeView(store *QuestionStore) *CustomizeView {
	v := &CustomizeView{store: store}
	v.unsubscribe = store.Subscribe(v.refresh)
	v.refresh()
	return v
}

func (v *CustomizeView) refresh() {
	questions := v.store.All()
	v.mu.Lock()
	v.questions = questions
	v.revision++
	v.mu.Unlock()
}

// Toggle forwards a membership change to the store.
func (v *CustomizeView) Toggle(id string) bool {
	return v.store.Toggle(id)
}

func (v *CustomizeView) ToggleWithResult(id string) (ToggleResult, bool) {
	return v.store.ToggleWithResult(id)
}

// Snapshot returns the questions matching filter. The active count always
// covers the whole catalog.
func (v *CustomizeView) Snapshot(filter CustomizeFilter) CustomizeSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	tab := strings.TrimSpace(filter.Tab)
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	matched := lo.Filter(v.questions, func(q models.JournalQuestion, _ int) bool {
		if tab != "" && tab != TabAll && string(q.Category) != tab {
			return false
		}
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(q.Title), query) ||
			strings.Contains(strings.ToLower(q.Subtitle), query)
	})

	active := lo.CountBy(v.questions, func(q models.JournalQuestion) bool {
		return q.IsActive
	})

	return CustomizeSnapshot{
		Questions:   matched,
		ActiveCount: active,
		Total:       len(v.questions),
		Revision:    v.revision,
	}
}

// Close stops listening to the store.
func (v *CustomizeView) Close() {
	v.unsubscribe()
}

// Prompt is a single yes/no question on the daily check-in form.
type Prompt struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Category models.Category `json:"category"`
}

// PromptGroup collects the prompts of one category.
type PromptGroup struct {
	Category models.Category `json:"category"`
	Prompts  []Prompt        `json:"prompts"`
}

// JournalSnapshot is what the daily check-in screen renders.
type JournalSnapshot struct {
	Groups   []PromptGroup `json:"groups"`
	Total    int           `json:"total"`
	Revision uint64        `json:"revision"`
}

// JournalView keeps the active subset as check-in prompts, grouped by
// category in first-seen order.
type JournalView struct {
	store       *QuestionStore
	unsubscribe func()

	mu       sync.RWMutex
	prompts  []Prompt
	revision uint64
}

func NewJournalView(store *QuestionStore) *JournalView {
	v := &JournalView{store: store}
	v.unsubscribe = store.Subscribe(v.refresh)
	v.refresh()
	return v
}

func (v *JournalView) refresh() {
	prompts := lo.Map(v.store.Active(), func(q models.JournalQuestion, _ int) Prompt {
		return Prompt{ID: q.ID, Text: q.Subtitle, Category: q.Category}
	})
	v.mu.Lock()
	v.prompts = prompts
	v.revision++
	v.mu.Unlock()
}

// Prompts returns the flat list of current prompts.
func (v *JournalView) Prompts() []Prompt {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Prompt, len(v.prompts))
	copy(out, v.prompts)
	return out
}

func (v *JournalView) Snapshot() JournalSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	order := lo.Uniq(lo.Map(v.prompts, func(p Prompt, _ int) models.Category {
		return p.Category
	}))
	groups := lo.Map(order, func(c models.Category, _ int) PromptGroup {
		return PromptGroup{
			Category: c,
			Prompts: lo.Filter(v.prompts, func(p Prompt, _ int) bool {
				return p.Category == c
			}),
		}
	})

	return JournalSnapshot{
		Groups:   groups,
		Total:    len(v.prompts),
		Revision: v.revision,
	}
}

// Close stops listening to the store.
func (v *JournalView) Close() {
	v.unsubscribe()
}
