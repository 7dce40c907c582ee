package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateCatRequest registers a new draft cat.
type CreateCatRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Fiv         string  `json:"fiv"`
	Felv        string  `json:"felv"`
}

func (r *CreateCatRequest) Validate() error {
	if r.Fiv == "" {
		r.Fiv = string(MarkerNotTested)
	}
	if r.Felv == "" {
		r.Felv = string(MarkerNotTested)
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&r.Fiv,
			validation.In(string(MarkerPositive), string(MarkerNegative), string(MarkerNotTested)).
				Error("fiv must be positive, negative or not_tested"),
		),
		validation.Field(&r.Felv,
			validation.In(string(MarkerPositive), string(MarkerNegative), string(MarkerNotTested)).
				Error("felv must be positive, negative or not_tested"),
		),
	)
}

// SetThumbnailRequest attaches the listing photo.
type SetThumbnailRequest struct {
	ThumbnailID uuid.UUID `json:"thumbnail_id"`
}

func (r *SetThumbnailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ThumbnailID,
			validation.By(requiredUUID("thumbnail_id")),
		),
	)
}

// AssignCatRequest places a draft cat into an existing announcement.
type AssignCatRequest struct {
	AnnouncementID uuid.UUID `json:"announcement_id"`
}

func (r *AssignCatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AnnouncementID,
			validation.By(requiredUUID("announcement_id")),
		),
	)
}

// AssignToNewAnnouncementRequest creates an announcement and assigns
// the cat as its first member in one step.
type AssignToNewAnnouncementRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (r *AssignToNewAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
	)
}

// ReassignCatRequest moves a published cat to another announcement.
type ReassignCatRequest struct {
	AnnouncementID uuid.UUID `json:"announcement_id"`
}

func (r *ReassignCatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AnnouncementID,
			validation.By(requiredUUID("announcement_id")),
		),
	)
}

func requiredUUID(field string) validation.RuleFunc {
	return func(value interface{}) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError("validation_required", field+" is required")
		}
		return nil
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// CatResponse is the public view of a cat.
type CatResponse struct {
	ID             uuid.UUID  `json:"id"`
	PersonID       uuid.UUID  `json:"person_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	Status         string     `json:"status"`
	AnnouncementID *uuid.UUID `json:"announcement_id,omitempty"`
	ThumbnailID    *uuid.UUID `json:"thumbnail_id,omitempty"`
	Fiv            string     `json:"fiv"`
	Felv           string     `json:"felv"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse maps the entity to its public view.
func (c *Cat) ToResponse() *CatResponse {
	return &CatResponse{
		ID:             c.ID,
		PersonID:       c.PersonID,
		Name:           c.Name,
		Description:    c.Description,
		Status:         c.Status,
		AnnouncementID: c.AnnouncementID,
		ThumbnailID:    c.ThumbnailID,
		Fiv:            string(c.Disease.Fiv),
		Felv:           string(c.Disease.Felv),
		PublishedAt:    c.PublishedAt,
		ClaimedAt:      c.ClaimedAt,
		CreatedAt:      c.CreatedAt,
	}
}

// ListCatsResponse response for list cats
type ListCatsResponse struct {
	Cats []CatResponse `json:"cats"`
}
