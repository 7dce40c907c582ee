package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catadopt-backend/internal/domains/announcement/model"
	catmodel "catadopt-backend/internal/domains/cat/model"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[uuid.UUID]*model.Announcement
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uuid.UUID]*model.Announcement{}}
}

func (r *testRepo) Create(ctx context.Context, a *model.Announcement) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Announcement) error {
	return r.Create(ctx, a)
}

func (r *testRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, model.NewNotFoundError(id)
	}
	copied := *a
	return &copied, nil
}

func (r *testRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Announcement, error) {
	return r.GetByID(ctx, id)
}

func (r *testRepo) Update(ctx context.Context, a *model.Announcement) error {
	if _, ok := r.byID[a.ID]; !ok {
		return model.NewNotFoundError(a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, a *model.Announcement) error {
	return r.Update(ctx, a)
}

func (r *testRepo) List(ctx context.Context, status string, page, limit int) ([]model.Announcement, int, error) {
	out := make([]model.Announcement, 0)
	for _, a := range r.byID {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	total := len(out)

	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *testRepo) ListByPerson(ctx context.Context, personID uuid.UUID, page, limit int) ([]model.Announcement, int, error) {
	out := make([]model.Announcement, 0)
	for _, a := range r.byID {
		if a.PersonID == personID {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

type testCohortReader struct {
	byAnnouncement map[uuid.UUID][]*catmodel.Cat
}

func (r *testCohortReader) ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]*catmodel.Cat, error) {
	return r.byAnnouncement[announcementID], nil
}

// -------------------------
// Tests
// -------------------------

func TestGetAnnouncement_IncludesCohort(t *testing.T) {
	repo := newTestRepo()
	personID := uuid.New()
	announcement := model.NewAnnouncement(personID, "Bonded pair", nil, time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), announcement))

	cat := catmodel.NewCat(personID, "Miso", nil, catmodel.UntestedDiseaseStatus(), time.Now().UTC())
	require.NoError(t, cat.SetThumbnail(uuid.New(), time.Now().UTC()))
	require.NoError(t, cat.AssignToAnnouncement(announcement.ID, time.Now().UTC()))

	cohorts := &testCohortReader{byAnnouncement: map[uuid.UUID][]*catmodel.Cat{
		announcement.ID: {cat},
	}}

	svc := NewAnnouncementService(nil, repo, cohorts)

	detail, err := svc.GetAnnouncement(context.Background(), announcement.ID)
	require.NoError(t, err)

	assert.Equal(t, announcement.ID, detail.ID)
	require.Len(t, detail.Cats, 1)
	assert.Equal(t, cat.ID, detail.Cats[0].ID)
	assert.Equal(t, string(catmodel.MarkerNotTested), detail.Cats[0].Fiv)
	assert.Equal(t, catmodel.CatStatusPublished, detail.Cats[0].Status)
}

func TestGetAnnouncement_NotFound(t *testing.T) {
	svc := NewAnnouncementService(nil, newTestRepo(), &testCohortReader{})

	_, err := svc.GetAnnouncement(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAnnouncementNotFound)
}

func TestListAnnouncements_FiltersAndPaginates(t *testing.T) {
	repo := newTestRepo()
	personID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(),
			model.NewAnnouncement(personID, "Listing", nil, time.Now().UTC())))
	}
	claimed := model.NewAnnouncement(personID, "Done", nil, time.Now().UTC())
	require.NoError(t, claimed.MarkClaimed(time.Now().UTC()))
	require.NoError(t, repo.Create(context.Background(), claimed))

	svc := NewAnnouncementService(nil, repo, &testCohortReader{})

	result, err := svc.ListAnnouncements(context.Background(), model.ListAnnouncementsRequest{
		Status: model.AnnouncementStatusActive,
		Page:   1,
		Limit:  2,
	})
	require.NoError(t, err)

	assert.Len(t, result.Announcements, 2)
	assert.Equal(t, 3, result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}

func TestListAnnouncements_RejectsUnknownStatus(t *testing.T) {
	svc := NewAnnouncementService(nil, newTestRepo(), &testCohortReader{})

	_, err := svc.ListAnnouncements(context.Background(), model.ListAnnouncementsRequest{Status: "archived"})
	assert.Error(t, err)
}
