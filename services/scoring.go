package services

import (
	"math"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

// ExamScore is the outcome of grading one answer map against an exam's
// question set.
type ExamScore struct {
	Earned     int `json:"earned"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ScoreExam grades answers against the questions. Every question
// contributes its weight to the total; only a recorded answer matching
// the correct label earns it. Unanswered questions count as incorrect.
// An exam with no questions cannot be scored and returns
// ErrMisconfiguredExam.
func ScoreExam(questions []models.Question, answers map[uuid.UUID]string) (ExamScore, error) {
	var earned, total int
	for _, q := range questions {
		total += q.Points
		if label, ok := answers[q.ID]; ok && label == q.CorrectOption {
			earned += q.Points
		}
	}
	if total == 0 {
		return ExamScore{}, ErrMisconfiguredExam
	}
	// Round half up so 62.5% grades as 63, not 62.
	percentage := int(math.Floor(float64(earned)/float64(total)*100 + 0.5))
	return ExamScore{Earned: earned, Total: total, Percentage: percentage}, nil
}
