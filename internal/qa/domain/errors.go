package domain

import "errors"

var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrSubmissionFailed   = errors.New("submission failed, please try again")
)
