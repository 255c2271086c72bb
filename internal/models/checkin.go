package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckInAnswer struct {
	QuestionID string   `json:"question_id"`
	Category   Category `json:"category"`
	Text       string   `json:"text"`
	Answer     bool     `json:"answer"`
}

// CheckIn is one completed daily journal form.
type CheckIn struct {
	ID          uuid.UUID       `json:"id"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Answers     []CheckInAnswer `json:"answers"`
}
