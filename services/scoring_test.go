package services

import (
	"errors"
	"testing"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

func weightedQuestions(weights []int) []models.Question {
	qs := make([]models.Question, len(weights))
	for i, w := range weights {
		qs[i] = models.Question{ID: uuid.New(), CorrectOption: "a", Points: w}
	}
	return qs
}

func answerFirst(qs []models.Question, n int, label string) map[uuid.UUID]string {
	answers := make(map[uuid.UUID]string)
	for i := 0; i < n && i < len(qs); i++ {
		answers[qs[i].ID] = label
	}
	return answers
}

func TestScoreExam(t *testing.T) {
	tests := []struct {
		name        string
		weights     []int
		correct     int
		wantEarned  int
		wantTotal   int
		wantPercent int
	}{
		{"three of four", []int{1, 1, 1, 1}, 3, 3, 4, 75},
		{"none answered", []int{1, 1, 1, 1}, 0, 0, 4, 0},
		{"all correct", []int{1, 1, 1, 1}, 4, 4, 4, 100},
		{"one third rounds down", []int{1, 1, 1}, 1, 1, 3, 33},
		{"two thirds rounds up", []int{1, 1, 1}, 2, 2, 3, 67},
		{"exact half rounds up", []int{1, 1, 1, 1, 1, 1, 1, 1}, 5, 5, 8, 63},
		{"weighted questions", []int{5, 3, 2}, 1, 5, 10, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := weightedQuestions(tt.weights)
			score, err := ScoreExam(qs, answerFirst(qs, tt.correct, "a"))
			if err != nil {
				t.Fatalf("ScoreExam: %v", err)
			}
			if score.Earned != tt.wantEarned || score.Total != tt.wantTotal {
				t.Errorf("earned/total = %d/%d, want %d/%d", score.Earned, score.Total, tt.wantEarned, tt.wantTotal)
			}
			if score.Percentage != tt.wantPercent {
				t.Errorf("percentage = %d, want %d", score.Percentage, tt.wantPercent)
			}
			if score.Percentage < 0 || score.Percentage > 100 {
				t.Errorf("percentage %d out of bounds", score.Percentage)
			}
		})
	}
}

func TestScoreExamWrongAnswersEarnNothing(t *testing.T) {
	qs := weightedQuestions([]int{1, 2, 3})
	score, err := ScoreExam(qs, answerFirst(qs, 3, "b"))
	if err != nil {
		t.Fatalf("ScoreExam: %v", err)
	}
	if score.Earned != 0 || score.Percentage != 0 {
		t.Errorf("earned = %d, percentage = %d, want 0, 0", score.Earned, score.Percentage)
	}
}

func TestScoreExamIgnoresAnswersOutsideExam(t *testing.T) {
	qs := weightedQuestions([]int{1, 1})
	answers := map[uuid.UUID]string{uuid.New(): "a"}
	score, err := ScoreExam(qs, answers)
	if err != nil {
		t.Fatalf("ScoreExam: %v", err)
	}
	if score.Earned != 0 {
		t.Errorf("earned = %d, want 0", score.Earned)
	}
}

func TestScoreExamNoQuestions(t *testing.T) {
	_, err := ScoreExam(nil, nil)
	if !errors.Is(err, ErrMisconfiguredExam) {
		t.Fatalf("err = %v, want ErrMisconfiguredExam", err)
	}
}
