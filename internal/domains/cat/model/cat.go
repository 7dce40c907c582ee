package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// CAT STATUS
// =====================================================

const (
	CatStatusDraft     = "draft"
	CatStatusPublished = "published"
	CatStatusClaimed   = "claimed"
)

// =====================================================
// CAT ENTITY
// =====================================================

// Cat is the adoption record for a single animal. AnnouncementID is set
// iff the cat is published or claimed, PublishedAt iff published or
// claimed, ClaimedAt iff claimed. The transition methods below are the
// only way these fields move together.
type Cat struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PersonID       uuid.UUID     `json:"person_id" db:"person_id"`
	Name           string        `json:"name" db:"name"`
	Description    *string       `json:"description,omitempty" db:"description"`
	Status         string        `json:"status" db:"status"`
	AnnouncementID *uuid.UUID    `json:"announcement_id,omitempty" db:"announcement_id"`
	ThumbnailID    *uuid.UUID    `json:"thumbnail_id,omitempty" db:"thumbnail_id"`
	PublishedAt    *time.Time    `json:"published_at,omitempty" db:"published_at"`
	ClaimedAt      *time.Time    `json:"claimed_at,omitempty" db:"claimed_at"`
	Disease        DiseaseStatus `json:"disease" db:"-"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`

	events []Event
}

// NewCat registers a cat in draft status with no announcement.
func NewCat(personID uuid.UUID, name string, description *string, disease DiseaseStatus, now time.Time) *Cat {
	return &Cat{
		ID:          uuid.New(),
		PersonID:    personID,
		Name:        name,
		Description: description,
		Status:      CatStatusDraft,
		Disease:     disease,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Cat) IsDraft() bool     { return c.Status == CatStatusDraft }
func (c *Cat) IsPublished() bool { return c.Status == CatStatusPublished }
func (c *Cat) IsClaimed() bool   { return c.Status == CatStatusClaimed }

// HasThumbnail reports whether the cat is ready to be listed publicly.
func (c *Cat) HasThumbnail() bool { return c.ThumbnailID != nil }

// SetThumbnail attaches the main photo used on the announcement listing.
func (c *Cat) SetThumbnail(thumbnailID uuid.UUID, now time.Time) error {
	if thumbnailID == uuid.Nil {
		return NewInvalidArgumentError("thumbnail id must not be empty")
	}
	c.ThumbnailID = &thumbnailID
	c.UpdatedAt = now
	return nil
}

// =====================================================
// LIFECYCLE TRANSITIONS
// =====================================================

// AssignToAnnouncement publishes a draft cat into an announcement.
// Step 1: reject caller bugs (empty announcement id).
// Step 2: only a draft cat may be assigned.
// Step 3: a thumbnail is required before publishing.
// Step 4: flip to published and raise the event.
func (c *Cat) AssignToAnnouncement(announcementID uuid.UUID, now time.Time) error {
	if announcementID == uuid.Nil {
		return NewInvalidArgumentError("announcement id must not be empty")
	}

	if !c.IsDraft() {
		return NewNotDraftError(c.ID, c.Status)
	}

	if !c.HasThumbnail() {
		return NewThumbnailRequiredError(c.ID)
	}

	publishedAt := now
	c.Status = CatStatusPublished
	c.AnnouncementID = &announcementID
	c.PublishedAt = &publishedAt
	c.UpdatedAt = now

	c.raise(CatAssignedEvent{
		CatID:          c.ID,
		AnnouncementID: announcementID,
		OccurredAt:     now,
	})
	return nil
}

// ReassignToAnotherAnnouncement moves a published cat to a different
// announcement. PublishedAt is untouched: this is a cohort move, not a
// fresh publication.
func (c *Cat) ReassignToAnotherAnnouncement(newAnnouncementID uuid.UUID, now time.Time) error {
	if newAnnouncementID == uuid.Nil {
		return NewInvalidArgumentError("announcement id must not be empty")
	}

	if !c.IsPublished() {
		return NewNotPublishedError(c.ID, c.Status)
	}

	from := *c.AnnouncementID
	c.AnnouncementID = &newAnnouncementID
	c.UpdatedAt = now

	c.raise(CatReassignedEvent{
		CatID:              c.ID,
		FromAnnouncementID: from,
		ToAnnouncementID:   newAnnouncementID,
		OccurredAt:         now,
	})
	return nil
}

// UnassignFromAnnouncement pulls a published cat back to draft. Status,
// AnnouncementID and PublishedAt always reset together.
func (c *Cat) UnassignFromAnnouncement(now time.Time) error {
	if !c.IsPublished() {
		return NewNotPublishedError(c.ID, c.Status)
	}

	from := *c.AnnouncementID
	c.Status = CatStatusDraft
	c.AnnouncementID = nil
	c.PublishedAt = nil
	c.UpdatedAt = now

	c.raise(CatUnassignedEvent{
		CatID:          c.ID,
		AnnouncementID: from,
		OccurredAt:     now,
	})
	return nil
}

// Claim marks a published cat as adopted. Claimed is terminal.
func (c *Cat) Claim(claimedAt time.Time) error {
	if c.IsClaimed() {
		return NewAlreadyClaimedError(c.ID)
	}
	if c.IsDraft() {
		return NewCannotClaimDraftError(c.ID)
	}

	at := claimedAt
	c.Status = CatStatusClaimed
	c.ClaimedAt = &at
	c.UpdatedAt = claimedAt

	c.raise(CatClaimedEvent{
		CatID:          c.ID,
		AnnouncementID: *c.AnnouncementID,
		ClaimedAt:      claimedAt,
	})
	return nil
}

// =====================================================
// EVENTS
// =====================================================

func (c *Cat) raise(event Event) {
	c.events = append(c.events, event)
}

// PullEvents drains the pending events. Callers publish them only after
// the surrounding transaction commits.
func (c *Cat) PullEvents() []Event {
	events := c.events
	c.events = nil
	return events
}
