package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catadopt-backend/internal/domains/announcement/model"
	"catadopt-backend/internal/domains/announcement/repository"
	"catadopt-backend/pkg/database"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type announcementService struct {
	pool             *pgxpool.Pool
	announcementRepo repository.AnnouncementRepository
	cohortReader     CohortReader
}

func NewAnnouncementService(
	pool *pgxpool.Pool,
	announcementRepo repository.AnnouncementRepository,
	cohortReader CohortReader,
) ServiceInterface {
	return &announcementService{
		pool:             pool,
		announcementRepo: announcementRepo,
		cohortReader:     cohortReader,
	}
}

// GetAnnouncement returns an announcement together with its current cohort.
func (s *announcementService) GetAnnouncement(ctx context.Context, id uuid.UUID) (*model.AnnouncementDetailResponse, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cohort, err := s.cohortReader.ListByAnnouncement(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cohort: %w", err)
	}

	cats := make([]model.CohortCatView, 0, len(cohort))
	for _, cat := range cohort {
		cats = append(cats, model.CohortCatView{
			ID:          cat.ID,
			Name:        cat.Name,
			ThumbnailID: cat.ThumbnailID,
			Status:      cat.Status,
			Fiv:         string(cat.Disease.Fiv),
			Felv:        string(cat.Disease.Felv),
			PublishedAt: cat.PublishedAt,
		})
	}

	return &model.AnnouncementDetailResponse{
		AnnouncementResponse: *announcement.ToResponse(),
		Cats:                 cats,
	}, nil
}

// ListAnnouncements lists announcements for the public catalog.
func (s *announcementService) ListAnnouncements(ctx context.Context, req model.ListAnnouncementsRequest) (*model.ListAnnouncementsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	announcements, total, err := s.announcementRepo.List(ctx, req.Status, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return buildListResponse(announcements, total, req.Page, req.Limit), nil
}

// ListMyAnnouncements lists the announcements owned by a person.
func (s *announcementService) ListMyAnnouncements(ctx context.Context, personID uuid.UUID, page, limit int) (*model.ListAnnouncementsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	announcements, total, err := s.announcementRepo.ListByPerson(ctx, personID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return buildListResponse(announcements, total, page, limit), nil
}

// MarkClaimed closes an announcement. The row is locked so the transition
// serializes against any in-flight assignment into the same announcement.
func (s *announcementService) MarkClaimed(ctx context.Context, personID, announcementID uuid.UUID) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		announcement, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, announcementID)
		if err != nil {
			return err
		}

		if announcement.PersonID != personID {
			return model.NewNotOwnerError(announcementID, personID)
		}

		if err := announcement.MarkClaimed(time.Now().UTC()); err != nil {
			return err
		}

		return s.announcementRepo.UpdateWithTx(ctx, tx, announcement)
	})
}

func buildListResponse(announcements []model.Announcement, total, page, limit int) *model.ListAnnouncementsResponse {
	responses := make([]model.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, *announcements[i].ToResponse())
	}

	totalPages := (total + limit - 1) / limit
	return &model.ListAnnouncementsResponse{
		Announcements: responses,
		Pagination: model.PaginationMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}
