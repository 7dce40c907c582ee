package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeCatNotFound          = "CAT001"
	ErrCodeInvalidDiseaseMarker = "CAT002"
	ErrCodeNotDraft             = "CAT003"
	ErrCodeThumbnailRequired    = "CAT004"
	ErrCodeNotPublished         = "CAT005"
	ErrCodeCannotClaimDraft     = "CAT006"
	ErrCodeAlreadyClaimed       = "CAT007"
	ErrCodePersonMismatch       = "CAT008"
	ErrCodeAlreadyInCohort      = "CAT009"
	ErrCodeAnnouncementClosed   = "CAT010"
	ErrCodeDiseaseConflict      = "CAT011"
	ErrCodeSourceInactive       = "CAT012"
	ErrCodeDestinationInactive  = "CAT013"
	ErrCodeSameAnnouncement     = "CAT014"
	ErrCodeDeleteClaimed        = "CAT015"
	ErrCodeNotAssigned          = "CAT016"
	ErrCodeInvalidArgument      = "CAT017"
	ErrCodeNotOwner             = "CAT018"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrCatNotFound          = errors.New("cat not found")
	ErrInvalidDiseaseMarker = errors.New("invalid disease marker")

	// State machine violations.
	ErrNotDraft          = errors.New("cat is not in draft status")
	ErrThumbnailRequired = errors.New("cat has no thumbnail")
	ErrNotPublished      = errors.New("cat is not published")
	ErrCannotClaimDraft  = errors.New("draft cat cannot be claimed")
	ErrAlreadyClaimed    = errors.New("cat is already claimed")
	ErrNotAssigned       = errors.New("cat is not assigned to an announcement")

	// Assignment rule violations.
	ErrPersonMismatch          = errors.New("cat and announcement belong to different people")
	ErrAlreadyInCohort         = errors.New("cat is already in the announcement cohort")
	ErrAnnouncementUnavailable = errors.New("announcement is not accepting cats")
	ErrDiseaseConflict         = errors.New("disease status conflicts with the cohort")

	// Reassignment rule violations.
	ErrReassignSourceInactive      = errors.New("source announcement is not active")
	ErrReassignDestinationInactive = errors.New("destination announcement is not active")
	ErrReassignSameAnnouncement    = errors.New("cat is already in the destination announcement")

	ErrDeleteClaimedCat = errors.New("claimed cat cannot be deleted")

	// ErrInvalidArgument marks a caller bug, not a domain outcome.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrNotCatOwner = errors.New("person does not own this cat")
)

// =====================================================
// TYPED ERROR
// =====================================================

// CatError carries a stable code alongside the wrapped sentinel.
type CatError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CatError) Unwrap() error {
	return e.Err
}

func NewCatError(code, message string, err error) *CatError {
	return &CatError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// FACTORY FUNCTIONS
// =====================================================

func NewNotFoundError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeCatNotFound,
		fmt.Sprintf("cat %s not found", id), ErrCatNotFound)
}

func NewInvalidDiseaseMarkerError(field, value string) *CatError {
	return NewCatError(ErrCodeInvalidDiseaseMarker,
		fmt.Sprintf("invalid %s marker %q", field, value), ErrInvalidDiseaseMarker)
}

func NewNotDraftError(id uuid.UUID, status string) *CatError {
	return NewCatError(ErrCodeNotDraft,
		fmt.Sprintf("cat %s is %s, expected draft", id, status), ErrNotDraft)
}

func NewThumbnailRequiredError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeThumbnailRequired,
		fmt.Sprintf("cat %s cannot be published without a thumbnail", id), ErrThumbnailRequired)
}

func NewNotPublishedError(id uuid.UUID, status string) *CatError {
	return NewCatError(ErrCodeNotPublished,
		fmt.Sprintf("cat %s is %s, expected published", id, status), ErrNotPublished)
}

func NewCannotClaimDraftError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeCannotClaimDraft,
		fmt.Sprintf("cat %s is still a draft", id), ErrCannotClaimDraft)
}

func NewAlreadyClaimedError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeAlreadyClaimed,
		fmt.Sprintf("cat %s is already claimed", id), ErrAlreadyClaimed)
}

func NewNotAssignedError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeNotAssigned,
		fmt.Sprintf("cat %s is not assigned to an announcement", id), ErrNotAssigned)
}

func NewPersonMismatchError(catPersonID, announcementPersonID uuid.UUID) *CatError {
	return NewCatError(ErrCodePersonMismatch,
		fmt.Sprintf("cat owner %s does not match announcement owner %s", catPersonID, announcementPersonID),
		ErrPersonMismatch)
}

func NewAlreadyInCohortError(catID, announcementID uuid.UUID) *CatError {
	return NewCatError(ErrCodeAlreadyInCohort,
		fmt.Sprintf("cat %s is already in announcement %s", catID, announcementID),
		ErrAlreadyInCohort)
}

func NewAnnouncementUnavailableError(announcementID uuid.UUID, status string) *CatError {
	return NewCatError(ErrCodeAnnouncementClosed,
		fmt.Sprintf("announcement %s is %s and not accepting cats", announcementID, status),
		ErrAnnouncementUnavailable)
}

// NewDiseaseConflictError is the assignment-flow shape: it names both the
// cat and the announcement whose cohort rejected it.
func NewDiseaseConflictError(catID, announcementID uuid.UUID) *CatError {
	return NewCatError(ErrCodeDiseaseConflict,
		fmt.Sprintf("cat %s has a disease conflict with the cohort of announcement %s", catID, announcementID),
		ErrDiseaseConflict)
}

// NewReassignDiseaseConflictError is the reassignment-flow shape: callers
// already hold the destination, so only the cat is named.
func NewReassignDiseaseConflictError(catID uuid.UUID) *CatError {
	return NewCatError(ErrCodeDiseaseConflict,
		fmt.Sprintf("cat %s has a disease conflict with the destination cohort", catID),
		ErrDiseaseConflict)
}

func NewSourceInactiveError(announcementID uuid.UUID, status string) *CatError {
	return NewCatError(ErrCodeSourceInactive,
		fmt.Sprintf("source announcement %s is %s", announcementID, status),
		ErrReassignSourceInactive)
}

func NewDestinationInactiveError(announcementID uuid.UUID, status string) *CatError {
	return NewCatError(ErrCodeDestinationInactive,
		fmt.Sprintf("destination announcement %s is %s", announcementID, status),
		ErrReassignDestinationInactive)
}

func NewSameAnnouncementError(catID, announcementID uuid.UUID) *CatError {
	return NewCatError(ErrCodeSameAnnouncement,
		fmt.Sprintf("cat %s is already assigned to announcement %s", catID, announcementID),
		ErrReassignSameAnnouncement)
}

func NewDeleteClaimedError(id uuid.UUID) *CatError {
	return NewCatError(ErrCodeDeleteClaimed,
		fmt.Sprintf("cat %s is claimed and cannot be deleted", id), ErrDeleteClaimedCat)
}

func NewInvalidArgumentError(message string) *CatError {
	return NewCatError(ErrCodeInvalidArgument, message, ErrInvalidArgument)
}

func NewNotOwnerError(catID, personID uuid.UUID) *CatError {
	return NewCatError(ErrCodeNotOwner,
		fmt.Sprintf("person %s does not own cat %s", personID, catID), ErrNotCatOwner)
}
