package service

import (
	"context"

	"github.com/google/uuid"

	"catadopt-backend/internal/domains/announcement/model"
	catmodel "catadopt-backend/internal/domains/cat/model"
)

// ServiceInterface is the announcement business logic contract.
type ServiceInterface interface {
	GetAnnouncement(ctx context.Context, id uuid.UUID) (*model.AnnouncementDetailResponse, error)
	ListAnnouncements(ctx context.Context, req model.ListAnnouncementsRequest) (*model.ListAnnouncementsResponse, error)
	ListMyAnnouncements(ctx context.Context, personID uuid.UUID, page, limit int) (*model.ListAnnouncementsResponse, error)
	MarkClaimed(ctx context.Context, personID, announcementID uuid.UUID) error
}

// CohortReader is the slice of the cat repository this domain needs:
// the set of cats currently linked to an announcement.
type CohortReader interface {
	ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]*catmodel.Cat, error)
}
