package errors

import "errors"

var (
	ErrPageNotFound             = errors.New("page not found")
	ErrSlugTaken                = errors.New("slug already in use")
	ErrInvalidPage              = errors.New("invalid page input")
	ErrGalleryItemNotFound      = errors.New("gallery item not found")
	ErrInvalidGalleryItem       = errors.New("invalid gallery item input")
	ErrMediaRequired            = errors.New("media file is required")
	ErrRepositoryInvariantBroke = errors.New("repository invariant broken")
)
