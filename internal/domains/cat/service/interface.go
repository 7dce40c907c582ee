package service

import (
	"context"

	"github.com/google/uuid"

	"catadopt-backend/internal/domains/cat/model"
)

// ServiceInterface is the cat business logic contract. Every operation
// is scoped to the requesting person; ownership is enforced here, not
// in the handlers.
type ServiceInterface interface {
	CreateCat(ctx context.Context, personID uuid.UUID, req model.CreateCatRequest) (*model.CatResponse, error)
	GetCat(ctx context.Context, id uuid.UUID) (*model.CatResponse, error)
	ListMyCats(ctx context.Context, personID uuid.UUID) (*model.ListCatsResponse, error)
	SetThumbnail(ctx context.Context, personID, catID uuid.UUID, req model.SetThumbnailRequest) (*model.CatResponse, error)

	AssignCat(ctx context.Context, personID, catID uuid.UUID, req model.AssignCatRequest) (*model.CatResponse, error)
	AssignCatToNewAnnouncement(ctx context.Context, personID, catID uuid.UUID, req model.AssignToNewAnnouncementRequest) (*model.CatResponse, error)
	ReassignCat(ctx context.Context, personID, catID uuid.UUID, req model.ReassignCatRequest) (*model.CatResponse, error)
	UnassignCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error)
	ClaimCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error)
	DeleteCat(ctx context.Context, personID, catID uuid.UUID) error
}
