package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrDraftRetired = errors.New("draft session retired")
)
