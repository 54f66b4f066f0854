package domain

import "errors"

// Meeting errors
var (
	ErrInvalidIdentifier   = errors.New("invalid meeting identifier")
	ErrInvalidTitle        = errors.New("invalid meeting title")
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Metadata errors
var (
	ErrMetadataNotFound   = errors.New("meeting metadata not found")
	ErrInvalidMeetingType = errors.New("invalid meeting type")
)

// Session errors
var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidName  = errors.New("name must be 1 to 64 characters without control characters")
)
