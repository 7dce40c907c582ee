package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catadopt-backend/internal/domains/cat/model"
)

// CatRepository is the persistence contract for cats.
//
// The ForUpdate and WithTx variants exist because assignment flows must
// load the cat and the cohort snapshot inside the same transaction that
// persists the result; a cohort read outside the announcement row lock
// could validate against stale membership.
type CatRepository interface {
	Create(ctx context.Context, cat *model.Cat) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Cat, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Cat, error)
	ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]*model.Cat, error)
	ListByAnnouncementWithTx(ctx context.Context, tx pgx.Tx, announcementID uuid.UUID) ([]*model.Cat, error)
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]*model.Cat, error)
	Update(ctx context.Context, cat *model.Cat) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, cat *model.Cat) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
