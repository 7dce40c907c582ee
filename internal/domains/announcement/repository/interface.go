package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catadopt-backend/internal/domains/announcement/model"
)

// =====================================================
// ANNOUNCEMENT REPOSITORY INTERFACE
// =====================================================
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	CreateWithTx(ctx context.Context, tx pgx.Tx, announcement *model.Announcement) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)

	// GetByIDForUpdate loads the announcement with a row lock. Cohort
	// validation and the subsequent cat mutation must happen under this
	// lock so two concurrent assignments into the same announcement
	// cannot both validate against a stale cohort snapshot.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Announcement, error)

	Update(ctx context.Context, announcement *model.Announcement) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, announcement *model.Announcement) error

	List(ctx context.Context, status string, page, limit int) ([]model.Announcement, int, error)
	ListByPerson(ctx context.Context, personID uuid.UUID, page, limit int) ([]model.Announcement, int, error)
}
