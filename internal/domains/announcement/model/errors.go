package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeAnnouncementNotFound = "ANN001"
	ErrCodeAlreadyClaimed       = "ANN002"
	ErrCodeNotOwner             = "ANN003"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAlreadyClaimed       = errors.New("announcement already claimed")
	ErrNotOwner             = errors.New("announcement does not belong to this person")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type AnnouncementError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnnouncementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AnnouncementError) Unwrap() error {
	return e.Err
}

// NewAnnouncementError creates a new AnnouncementError
func NewAnnouncementError(code, message string, err error) *AnnouncementError {
	return &AnnouncementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(id uuid.UUID) *AnnouncementError {
	return NewAnnouncementError(
		ErrCodeAnnouncementNotFound,
		fmt.Sprintf("announcement %s not found", id),
		ErrAnnouncementNotFound,
	)
}

func NewAlreadyClaimedError(id uuid.UUID) *AnnouncementError {
	return NewAnnouncementError(
		ErrCodeAlreadyClaimed,
		fmt.Sprintf("announcement %s already claimed", id),
		ErrAlreadyClaimed,
	)
}

func NewNotOwnerError(announcementID, personID uuid.UUID) *AnnouncementError {
	return NewAnnouncementError(
		ErrCodeNotOwner,
		fmt.Sprintf("announcement %s does not belong to person %s", announcementID, personID),
		ErrNotOwner,
	)
}
