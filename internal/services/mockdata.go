package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/HammerMeetNail/dailycheck/internal/models"
)

var impactFactors = []string{
	"Hydration",
	"Sleep Performance",
	"Read in Bed",
	"Device in Bed",
	"Work Late",
	"Caffeine",
	"Eat in Bedroom",
}

var followingNames = []string{"Alex", "Sam", "Jordan", "Casey", "Morgan", "Taylor", "Riley", "Avery"}

var experimentTemplates = []models.Experiment{
	{ID: "1", Title: "Morning Cold Shower", Description: "Start your day with a 2-minute cold shower", Duration: "7 days", Category: models.ExperimentWellness, TotalDays: 7},
	{ID: "2", Title: "Intermittent Fasting 16:8", Description: "Fast for 16 hours, eat within 8-hour window", Duration: "14 days", Category: models.ExperimentNutrition, TotalDays: 14},
	{ID: "3", Title: "Digital Detox Evening", Description: "No screens 2 hours before bedtime", Duration: "10 days", Category: models.ExperimentSleep, TotalDays: 10},
	{ID: "4", Title: "10,000 Steps Daily", Description: "Walk at least 10,000 steps every day", Duration: "21 days", Category: models.ExperimentFitness, TotalDays: 21},
	{ID: "5", Title: "Meditation Streak", Description: "15 minutes of meditation every morning", Duration: "30 days", Category: models.ExperimentMindfulness, TotalDays: 30},
	{ID: "6", Title: "No Sugar Challenge", Description: "Eliminate added sugars from your diet", Duration: "14 days", Category: models.ExperimentNutrition, TotalDays: 14},
}

// MockDataService produces the randomized stand-in data the stats,
// experiments and profile screens display.
type MockDataService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockDataService(rng *rand.Rand) *MockDataService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockDataService{rng: rng}
}

// between returns an int in [min, max].
func (s *MockDataService) between(min, max int) int {
	return s.rng.Intn(max-min+1) + min
}

func (s *MockDataService) trend() models.Trend {
	if s.rng.Float64() > 0.5 {
		return models.TrendUp
	}
	return models.TrendDown
}

func (s *MockDataService) HealthScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.between(4000, 9500)
}

func (s *MockDataService) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.between(5, 100)
}

func (s *MockDataService) JournalImpacts() []models.JournalImpact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(impactFactors, func(factor string, _ int) models.JournalImpact {
		return models.JournalImpact{Factor: factor, Value: s.between(-100, 100)}
	})
}

// Chart returns 24 hourly samples around a random baseline.
func (s *MockDataService) Chart(metric string) []models.ChartPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.rng.Float64()*50 + 50
	points := make([]models.ChartPoint, 24)
	for hour := range points {
		variation := (s.rng.Float64() - 0.5) * 30
		value := math.Max(0, base+variation)
		points[hour] = models.ChartPoint{Time: hour, Value: math.Round(value*10) / 10}
	}
	return points
}

func (s *MockDataService) Metrics() []models.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []models.Metric{
		{ID: "1", Name: "Heart Rate", Value: s.between(55, 80), Unit: "bpm", Trend: s.trend()},
		{ID: "2", Name: "Sleep Quality", Value: s.between(70, 100), Unit: "%", Trend: s.trend()},
		{ID: "3", Name: "Steps", Value: s.between(5000, 15000), Unit: "steps", Trend: s.trend()},
		{ID: "4", Name: "Calories", Value: s.between(1800, 2800), Unit: "kcal", Trend: s.trend()},
		{ID: "5", Name: "HRV", Value: s.between(40, 80), Unit: "ms", Trend: s.trend()},
		{ID: "6", Name: "Recovery", Value: s.between(60, 100), Unit: "%", Trend: s.trend()},
	}
}

func (s *MockDataService) Stats() models.Stats {
	return models.Stats{
		HealthScore: s.HealthScore(),
		Streak:      s.Streak(),
		Metrics:     s.Metrics(),
		Impacts:     s.JournalImpacts(),
	}
}

func (s *MockDataService) Experiments() []models.Experiment {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := []models.ExperimentStatus{
		models.ExperimentNotStarted,
		models.ExperimentInProgress,
		models.ExperimentCompleted,
	}
	impacts := []models.ExperimentImpact{models.ImpactPositive, models.ImpactNegative}

	return lo.Map(experimentTemplates, func(tmpl models.Experiment, _ int) models.Experiment {
		exp := tmpl
		exp.Status = statuses[s.rng.Intn(len(statuses))]

		switch exp.Status {
		case models.ExperimentCompleted:
			impact := impacts[s.rng.Intn(len(impacts))]
			exp.Impact = &impact
			days := exp.TotalDays
			exp.DaysCompleted = &days
		case models.ExperimentInProgress:
			days := s.rng.Intn(exp.TotalDays)
			exp.DaysCompleted = &days
		}

		exp.AIPrediction = fmt.Sprintf("+%d pts to Health Score", s.between(150, 550))
		exp.Confidence = s.between(80, 95)
		return exp
	})
}

// FollowingUsers returns 4 to 6 generated profiles.
func (s *MockDataService) FollowingUsers() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.rng.Intn(3) + 4
	users := make([]models.Profile, count)
	for i := range users {
		name := followingNames[i%len(followingNames)]
		users[i] = models.Profile{
			ID:          fmt.Sprintf("%d", i+1),
			Name:        name,
			Username:    fmt.Sprintf("@%s%d", strings.ToLower(name), s.rng.Intn(99)),
			AvatarColor: fmt.Sprintf("hsl(%.0f, 70%%, 60%%)", s.rng.Float64()*360),
			Streak:      s.between(5, 100),
			HealthScore: s.between(4000, 9500),
			Followers:   s.between(50, 500),
			Following:   s.between(30, 300),
		}
	}
	return users
}

// SearchUsers filters generated profiles by case-insensitive name match.
func (s *MockDataService) SearchUsers(query string) []models.Profile {
	users := s.FollowingUsers()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}
	return lo.Filter(users, func(u models.Profile, _ int) bool {
		return strings.Contains(strings.ToLower(u.Name), query)
	})
}

func (s *MockDataService) HealthFactors() []models.HealthFactor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []models.HealthFactor{
		{Name: "Sleep Quality", Contribution: 25, Current: s.between(70, 100), Optimal: "85-100%"},
		{Name: "Resting Heart Rate", Contribution: 20, Current: s.between(50, 65), Optimal: "50-60 bpm"},
		{Name: "Recovery Time", Contribution: 18, Current: s.between(80, 100), Optimal: "90-100%"},
		{Name: "HRV (Heart Rate Variability)", Contribution: 15, Current: s.between(35, 60), Optimal: "40-60 ms"},
		{Name: "Stress Level", Contribution: 12, Current: s.between(15, 40), Optimal: "<30/100"},
		{Name: "Activity Consistency", Contribution: 10, Current: s.between(75, 95), Optimal: ">80%"},
	}
}
