package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// TASK PAYLOADS
// =====================================================

// CatAssignedPayload payload for cat:assigned tasks.
type CatAssignedPayload struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// CatReassignedPayload payload for cat:reassigned tasks.
type CatReassignedPayload struct {
	CatID              uuid.UUID `json:"cat_id"`
	FromAnnouncementID uuid.UUID `json:"from_announcement_id"`
	ToAnnouncementID   uuid.UUID `json:"to_announcement_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// CatUnassignedPayload payload for cat:unassigned tasks.
type CatUnassignedPayload struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// CatClaimedPayload payload for cat:claimed tasks.
type CatClaimedPayload struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	ClaimedAt      time.Time `json:"claimed_at"`
}
