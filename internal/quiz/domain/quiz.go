package domain

import "time"

// Quiz is a fixed ordered sequence of questions and the transitions that
// move a Session through it:
//
//	answering(i) --Confirm--> answering(i+1)
//	answering(n-1) --Confirm--> showing_results
//	any --Reset--> answering(0)
type Quiz struct {
	Questions []Question
	now       func() time.Time
}

// NewQuiz builds a quiz over questions.
func NewQuiz(questions []Question) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	return &Quiz{Questions: questions, now: time.Now}, nil
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// Current returns the question s is answering, or nil when showing results.
func (q *Quiz) Current(s *Session) *Question {
	if s.State != StateAnswering || s.Index < 0 || s.Index >= len(q.Questions) {
		return nil
	}
	return &q.Questions[s.Index]
}

// Select sets the pending answer for the current question. It may be
// changed freely until Confirm.
func (q *Quiz) Select(s *Session, option int) error {
	cur := q.Current(s)
	if cur == nil {
		return ErrQuizFinished
	}
	if option < 0 || option >= len(cur.Options) {
		return ErrInvalidOption
	}
	s.Selection = &option
	s.UpdatedAt = q.now()
	return nil
}

// Confirm records the pending selection and advances.
func (q *Quiz) Confirm(s *Session) error {
	if q.Current(s) == nil {
		return ErrQuizFinished
	}
	if s.Selection == nil {
		return ErrNoSelection
	}

	s.Answers = append(s.Answers, *s.Selection)
	s.Selection = nil
	s.Index++
	if s.Index >= len(q.Questions) {
		s.State = StateShowingResults
	}
	s.UpdatedAt = q.now()
	return nil
}

// Reset discards all answers and returns to the first question.
func (q *Quiz) Reset(s *Session) {
	s.State = StateAnswering
	s.Index = 0
	s.Selection = nil
	s.Answers = []int{}
	s.UpdatedAt = q.now()
}

// Result scores a finished session.
func (q *Quiz) Result(s *Session) (*Result, error) {
	if s.State != StateShowingResults {
		return nil, ErrQuizNotFinished
	}

	res := &Result{Total: len(q.Questions), Answers: make([]AnswerReview, 0, len(q.Questions))}
	for i, question := range q.Questions {
		selected := -1
		if i < len(s.Answers) {
			selected = s.Answers[i]
		}
		ok := selected == question.Correct
		if ok {
			res.Score++
		}
		res.Answers = append(res.Answers, AnswerReview{
			QuestionID:  question.ID,
			Prompt:      question.Prompt,
			Selected:    selected,
			Correct:     question.Correct,
			IsCorrect:   ok,
			Explanation: question.Explanation,
		})
	}

	res.Percentage = float64(res.Score) * 100 / float64(res.Total)
	tier := TierFor(res.Percentage)
	res.Tier = tier.Name
	res.Message = tier.Message
	return res, nil
}
