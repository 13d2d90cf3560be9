package errors

import "errors"

var (
	ErrArtefactNotFound         = errors.New("artefact not found")
	ErrInvalidArtefactInput     = errors.New("invalid artefact input")
	ErrUnknownCategory          = errors.New("no governance rule exists for category")
	ErrMissingMandatoryMetadata = errors.New("mandatory metadata fields are missing")
	ErrReviewWindowExceeded     = errors.New("review due date exceeds the category review interval")
	ErrForbidden                = errors.New("caller role is not permitted to govern artefacts")
	ErrInvalidTransition        = errors.New("decision is not valid for the artefact's current status")
	ErrVersionConflict          = errors.New("artefact was modified concurrently")
)
