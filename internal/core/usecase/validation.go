package usecase

import "errors"

var (
	errEmptyQuery      = errors.New("query text is empty")
	errEmptyBusinessID = errors.New("business id is empty")
)
