package tournament

import "errors"

var (
	ErrNoResult        = errors.New("no match has been simulated yet")
	ErrMalformedResult = errors.New("malformed match result")
	ErrBotNotFound     = errors.New("bot not found in results")
)
