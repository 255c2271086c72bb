package models

// Category is the topic tag a journal question belongs to.
type Category string

const (
	CategoryCircadianHealth Category = "CIRCADIAN HEALTH"
	CategoryHealthStatus    Category = "HEALTH STATUS"
	CategoryLifestyle       Category = "LIFESTYLE"
	CategoryDiet            Category = "DIET"
	CategoryMentalHealth    Category = "MENTAL HEALTH"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCircadianHealth,
	CategoryHealthStatus,
	CategoryLifestyle,
	CategoryDiet,
	CategoryMentalHealth,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// JournalQuestion is one candidate daily check-in prompt.
type JournalQuestion struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Category Category `json:"category"`
	IsActive bool     `json:"is_active"`
}

// DefaultCatalog returns a fresh copy of the built-in question catalog.
func DefaultCatalog() []JournalQuestion {
	return []JournalQuestion{
		{ID: "1", Title: "Acupuncture", Subtitle: "Receive acupuncture therapy?", Category: CategoryCircadianHealth},
		{ID: "2", Title: "Added Sugar", Subtitle: "Consume added sugar?", Category: CategoryCircadianHealth, IsActive: true},
		{ID: "6", Title: "Artificial Light", Subtitle: "See artificial light upon waking up?", Category: CategoryCircadianHealth},
		{ID: "9", Title: "Blue-Light Blocking Glasses", Subtitle: "Wear blue-light blocking glasses before bed", Category: CategoryCircadianHealth, IsActive: true},
		{ID: "12", Title: "Device in Bed", Subtitle: "View a screened device while in bed?", Category: CategoryCircadianHealth, IsActive: true},
		{ID: "13", Title: "Eat in Bedroom", Subtitle: "Consume food in bedroom?", Category: CategoryCircadianHealth},
		{ID: "18", Title: "Read in Bed", Subtitle: "Read (physical book) in bed?", Category: CategoryCircadianHealth},
		{ID: "19", Title: "Sleep Performance", Subtitle: "Achieve 81%+ sleep performance?", Category: CategoryCircadianHealth, IsActive: true},

		{ID: "3", Title: "AD(H)D Medication", Subtitle: "Take AD(H)D medication?", Category: CategoryHealthStatus},
		{ID: "5", Title: "Anti-anxiety Medication", Subtitle: "Take anti-anxiety medication?", Category: CategoryHealthStatus},
		{ID: "7", Title: "Bloating", Subtitle: "Experience bloating?", Category: CategoryHealthStatus, IsActive: true},
		{ID: "8", Title: "Blood Pressure Medication", Subtitle: "Take blood pressure medication?", Category: CategoryHealthStatus},

		{ID: "4", Title: "Alcohol", Subtitle: "Have any alcoholic drinks?", Category: CategoryLifestyle},
		{ID: "11", Title: "Cold Shower", Subtitle: "Take a cold shower?", Category: CategoryLifestyle},
		{ID: "14", Title: "Exercise", Subtitle: "Work out or exercise?", Category: CategoryLifestyle},
		{ID: "20", Title: "Tobacco", Subtitle: "Use tobacco of any form?", Category: CategoryLifestyle},
		{ID: "21", Title: "Work Late", Subtitle: "Work after 8 PM?", Category: CategoryLifestyle},

		{ID: "10", Title: "Caffeine", Subtitle: "Have any caffeine?", Category: CategoryDiet, IsActive: true},
		{ID: "16", Title: "Hydration", Subtitle: "Hydrate sufficiently?", Category: CategoryDiet, IsActive: true},

		{ID: "15", Title: "Feel Stressed", Subtitle: "Experience any stress?", Category: CategoryMentalHealth, IsActive: true},
		{ID: "17", Title: "Meditation", Subtitle: "Meditate today?", Category: CategoryMentalHealth},
	}
}
