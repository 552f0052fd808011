package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgFarmNotFound     = "farm not found"
	ErrMsgPlotNotFound     = "plot not found"
	ErrMsgActivityNotFound = "activity not found"
	ErrMsgListingNotFound  = "listing not found"

	ErrMsgAlreadyCompleted  = "activity already completed"
	ErrMsgFarmRequired      = "plot must reference an existing farm"
	ErrMsgNoListingsMatched = "no listings matched the search query"

	ErrMsgInvalidInput   = "invalid input"
	ErrMsgNotOwner       = "resource is owned by another user"
	ErrMsgUploadFailed   = "image upload failed"
	ErrMsgAnalysisFailed = "image analysis failed"
	ErrMsgEmptyResponse  = "empty response from model"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrFarmNotFound     = errors.New(ErrMsgFarmNotFound)
	ErrPlotNotFound     = errors.New(ErrMsgPlotNotFound)
	ErrActivityNotFound = errors.New(ErrMsgActivityNotFound)
	ErrListingNotFound  = errors.New(ErrMsgListingNotFound)

	ErrAlreadyCompleted  = errors.New(ErrMsgAlreadyCompleted)
	ErrFarmRequired      = errors.New(ErrMsgFarmRequired)
	ErrNoListingsMatched = errors.New(ErrMsgNoListingsMatched)

	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)
	ErrNotOwner       = errors.New(ErrMsgNotOwner)
	ErrUploadFailed   = errors.New(ErrMsgUploadFailed)
	ErrAnalysisFailed = errors.New(ErrMsgAnalysisFailed)
	ErrEmptyResponse  = errors.New(ErrMsgEmptyResponse)
)
