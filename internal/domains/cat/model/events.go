package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// DOMAIN EVENTS
// =====================================================

// Event is raised exactly once per successful lifecycle transition and
// never on a failed one. The application layer drains events after the
// transaction commits and fans them out to the task queue.
type Event interface {
	EventName() string
}

type CatAssignedEvent struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (CatAssignedEvent) EventName() string { return "cat.assigned" }

type CatReassignedEvent struct {
	CatID              uuid.UUID `json:"cat_id"`
	FromAnnouncementID uuid.UUID `json:"from_announcement_id"`
	ToAnnouncementID   uuid.UUID `json:"to_announcement_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}

func (CatReassignedEvent) EventName() string { return "cat.reassigned" }

type CatUnassignedEvent struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (CatUnassignedEvent) EventName() string { return "cat.unassigned" }

type CatClaimedEvent struct {
	CatID          uuid.UUID `json:"cat_id"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	ClaimedAt      time.Time `json:"claimed_at"`
}

func (CatClaimedEvent) EventName() string { return "cat.claimed" }
