package domain

import "time"

// Question is one multiple-choice question. Correct is never sent to clients
// while a session is in progress.
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Options     []string `json:"options" yaml:"options"`
	Correct     int      `json:"-" yaml:"correct"`
	Explanation string   `json:"-" yaml:"explanation"`
	Criterion   string   `json:"criterion,omitempty" yaml:"criterion"`
}

// State of a quiz session.
type State string

const (
	StateAnswering      State = "answering"
	StateShowingResults State = "showing_results"
)

// Session is the progress of one person through a quiz.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Index     int       `json:"question_index"`
	Selection *int      `json:"selection,omitempty"`
	Answers   []int     `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a session in answering(0).
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateAnswering,
		Answers:   []int{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AnswerReview is the per-question breakdown shown with the results.
type AnswerReview struct {
	QuestionID  string `json:"question_id"`
	Prompt      string `json:"prompt"`
	Selected    int    `json:"selected"`
	Correct     int    `json:"correct"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation,omitempty"`
}

// Result is the final score of a finished session.
type Result struct {
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Tier       string         `json:"tier"`
	Message    string         `json:"message"`
	Answers    []AnswerReview `json:"answers"`
}
