package errors

import "errors"

var (
	ErrYearNotFound             = errors.New("year not found")
	ErrYearTaken                = errors.New("year already exists")
	ErrInvalidYear              = errors.New("invalid year")
	ErrPackageNotFound          = errors.New("pricing package not found")
	ErrVersionNotFound          = errors.New("pricing package version not found")
	ErrInvalidPackage           = errors.New("invalid pricing package")
	ErrInvalidSegment           = errors.New("invalid pricing package segment")
	ErrFileRequired             = errors.New("pricing package file is required")
	ErrApproverRequired         = errors.New("approver identity is required")
	ErrUploaderRequired         = errors.New("uploader identity is required")
	ErrDuplicateVersion         = errors.New("pricing package version already recorded")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
