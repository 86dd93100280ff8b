package pkg

import "github.com/pkg/errors"

var (
	ErrInvalidURL          = errors.New("invalid video url")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrAgeRestricted       = errors.New("video age restricted")
	ErrExtraction          = errors.New("extraction failed")
	ErrStreamNotFound      = errors.New("stream not found")
	ErrMergedOutputMissing = errors.New("merged output not found")
)
