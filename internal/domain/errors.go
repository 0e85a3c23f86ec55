package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExists     = errors.New("session already exists")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrNoCurrentQuestion = errors.New("no current question")
)
