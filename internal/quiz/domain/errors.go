package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrInvalidOption   = errors.New("option is out of range")
	ErrNoSelection     = errors.New("select an answer before confirming")
	ErrQuizFinished    = errors.New("quiz is already finished")
	ErrQuizNotFinished = errors.New("quiz is not finished yet")
	ErrEmptyQuiz       = errors.New("quiz has no questions")
	ErrSessionBusy     = errors.New("quiz session is being updated, try again")
)
