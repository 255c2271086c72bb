package models

type ExperimentStatus string

const (
	ExperimentNotStarted ExperimentStatus = "not_started"
	ExperimentInProgress ExperimentStatus = "in_progress"
	ExperimentCompleted  ExperimentStatus = "completed"
)

type ExperimentImpact string

const (
	ImpactPositive ExperimentImpact = "positive"
	ImpactNegative ExperimentImpact = "negative"
)

type ExperimentCategory string

const (
	ExperimentWellness    ExperimentCategory = "Wellness"
	ExperimentNutrition   ExperimentCategory = "Nutrition"
	ExperimentSleep       ExperimentCategory = "Sleep"
	ExperimentFitness     ExperimentCategory = "Fitness"
	ExperimentMindfulness ExperimentCategory = "Mindfulness"
)

type Experiment struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Duration      string             `json:"duration"`
	Category      ExperimentCategory `json:"category"`
	TotalDays     int                `json:"total_days"`
	AIPrediction  string             `json:"ai_prediction"`
	Confidence    int                `json:"confidence"`
	Status        ExperimentStatus   `json:"status"`
	Impact        *ExperimentImpact  `json:"impact"`
	DaysCompleted *int               `json:"days_completed,omitempty"`
}
