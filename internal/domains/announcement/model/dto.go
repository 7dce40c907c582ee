package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ListAnnouncementsRequest filters the public announcement listing.
type ListAnnouncementsRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListAnnouncementsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.In(AnnouncementStatusActive, AnnouncementStatusClaimed).
				Error("status must be active or claimed"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// AnnouncementResponse is the public view of an announcement.
type AnnouncementResponse struct {
	ID          uuid.UUID  `json:"id"`
	PersonID    uuid.UUID  `json:"person_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToResponse maps the entity to its public view.
func (a *Announcement) ToResponse() *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:          a.ID,
		PersonID:    a.PersonID,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status,
		ClaimedAt:   a.ClaimedAt,
		CreatedAt:   a.CreatedAt,
	}
}

// CohortCatView is the slim projection of a cat shown inside an
// announcement detail (kept local to avoid importing the cat domain).
type CohortCatView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ThumbnailID *uuid.UUID `json:"thumbnail_id,omitempty"`
	Status      string     `json:"status"`
	Fiv         string     `json:"fiv"`
	Felv        string     `json:"felv"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// AnnouncementDetailResponse is an announcement together with its cohort.
type AnnouncementDetailResponse struct {
	AnnouncementResponse
	Cats []CohortCatView `json:"cats"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListAnnouncementsResponse response for list announcements
type ListAnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	Pagination    PaginationMeta         `json:"pagination"`
}
