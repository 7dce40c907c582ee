package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ANNOUNCEMENT STATUS CONSTANTS
// =====================================================
const (
	AnnouncementStatusActive  = "active"
	AnnouncementStatusClaimed = "claimed"
)

// Announcement is a shared adoption listing. One announcement can hold one
// or more cats awaiting adoption together, all owned by the same person.
// The announcement does not track its cats; the cohort is the set of cats
// whose announcement_id points at it, computed at query time.
type Announcement struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PersonID    uuid.UUID  `json:"person_id" db:"person_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      string     `json:"status" db:"status"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty" db:"claimed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewAnnouncement creates an Active announcement for a person.
func NewAnnouncement(personID uuid.UUID, title string, description *string, now time.Time) *Announcement {
	return &Announcement{
		ID:          uuid.New(),
		PersonID:    personID,
		Title:       title,
		Description: description,
		Status:      AnnouncementStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsActive reports whether the announcement still accepts cohort changes.
func (a *Announcement) IsActive() bool {
	return a.Status == AnnouncementStatusActive
}

// IsClaimed reports whether the announcement has been closed by adoption.
func (a *Announcement) IsClaimed() bool {
	return a.Status == AnnouncementStatusClaimed
}

// MarkClaimed closes the announcement. A claimed announcement freezes its
// cohort: no cat may be assigned into it or reassigned out of it.
func (a *Announcement) MarkClaimed(now time.Time) error {
	if a.IsClaimed() {
		return NewAlreadyClaimedError(a.ID)
	}

	a.Status = AnnouncementStatusClaimed
	a.ClaimedAt = &now
	a.UpdatedAt = now
	return nil
}
