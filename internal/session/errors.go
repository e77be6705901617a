package session

import "errors"

var (
	ErrMissingPlayer = errors.New("player id is required")
	ErrNoRounds      = errors.New("session has no rounds")
)
