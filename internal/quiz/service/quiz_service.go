package service

import (
	"context"
	"errors"
	"time"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/accessguide/accessguide-backend/internal/quiz/domain"
	"github.com/google/uuid"
)

// SessionStore persists quiz sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Modify applies fn atomically to the stored session.
	Modify(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// View is what a client sees of a session: its progress and the current
// question without the answer key.
type View struct {
	Session  *domain.Session  `json:"session"`
	Question *domain.Question `json:"question,omitempty"`
	Number   int              `json:"question_number,omitempty"`
	Total    int              `json:"total_questions"`
}

// QuizService drives sessions through the quiz.
type QuizService struct {
	quiz  *domain.Quiz
	store SessionStore
	now   func() time.Time
}

// NewQuizService creates a new QuizService
func NewQuizService(quiz *domain.Quiz, store SessionStore) *QuizService {
	return &QuizService{
		quiz:  quiz,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a new session at the first question.
func (s *QuizService) Start(ctx context.Context) (*View, error) {
	logger := logging.NewLogger(ctx)

	sess := domain.NewSession(uuid.New().String(), s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		logger.LogError("create_session", err)
		return nil, err
	}
	logger.LogInfof("create_session", "started quiz session %s", sess.ID)
	return s.view(sess), nil
}

// Get returns the current view of a session.
func (s *QuizService) Get(ctx context.Context, id string) (*View, error) {
	sess, err := s.load(ctx, "quiz.Get", id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Select sets the pending answer for the current question.
func (s *QuizService) Select(ctx context.Context, id string, option int) (*View, error) {
	return s.mutate(ctx, "quiz.Select", id, func(sess *domain.Session) error {
		return s.quiz.Select(sess, option)
	})
}

// Confirm records the pending answer and advances.
func (s *QuizService) Confirm(ctx context.Context, id string) (*View, error) {
	return s.mutate(ctx, "quiz.Confirm", id, func(sess *domain.Session) error {
		return s.quiz.Confirm(sess)
	})
}

// Reset restarts a session from the first question.
func (s *QuizService) Reset(ctx context.Context, id string) (*View, error) {
	return s.mutate(ctx, "quiz.Reset", id, func(sess *domain.Session) error {
		s.quiz.Reset(sess)
		return nil
	})
}

// Result scores a finished session.
func (s *QuizService) Result(ctx context.Context, id string) (*domain.Result, error) {
	sess, err := s.load(ctx, "quiz.Result", id)
	if err != nil {
		return nil, err
	}
	res, err := s.quiz.Result(sess)
	if err != nil {
		return nil, classify("quiz.Result", err)
	}
	return res, nil
}

// Delete discards a session.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return classify("quiz.Delete", err)
	}
	return nil
}

func (s *QuizService) mutate(ctx context.Context, op, id string, fn func(*domain.Session) error) (*View, error) {
	sess, err := s.store.Modify(ctx, id, fn)
	if err != nil {
		err = classify(op, err)
		if apperr.KindOf(err) == apperr.KindInternal {
			logging.NewLogger(ctx).LogErrorf(op, "update session %s: %v", id, err)
		}
		return nil, err
	}
	return s.view(sess), nil
}

func (s *QuizService) load(ctx context.Context, op, id string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, classify(op, err)
	}
	return sess, nil
}

func (s *QuizService) view(sess *domain.Session) *View {
	v := &View{Session: sess, Total: s.quiz.Len()}
	if q := s.quiz.Current(sess); q != nil {
		v.Question = q
		v.Number = sess.Index + 1
	}
	return v
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperr.E(op, apperr.KindNotFound, err)
	case errors.Is(err, domain.ErrInvalidOption):
		return apperr.E(op, apperr.KindValidation, err).WithField("option")
	case errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrQuizFinished),
		errors.Is(err, domain.ErrQuizNotFinished),
		errors.Is(err, domain.ErrSessionBusy):
		return apperr.E(op, apperr.KindConflict, err)
	}
	return err
}
