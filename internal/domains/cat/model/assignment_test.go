package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	annmodel "catadopt-backend/internal/domains/announcement/model"
)

func activeAnnouncement(personID uuid.UUID) *annmodel.Announcement {
	return annmodel.NewAnnouncement(personID, "Two bonded seniors", nil, time.Now().UTC())
}

func claimedAnnouncement(t *testing.T, personID uuid.UUID) *annmodel.Announcement {
	t.Helper()
	a := activeAnnouncement(personID)
	require.NoError(t, a.MarkClaimed(time.Now().UTC()))
	return a
}

func draftCatFor(t *testing.T, personID uuid.UUID, disease DiseaseStatus) *Cat {
	t.Helper()
	cat := NewCat(personID, "Pickle", nil, disease, time.Now().UTC())
	require.NoError(t, cat.SetThumbnail(uuid.New(), time.Now().UTC()))
	return cat
}

func publishedCatFor(t *testing.T, personID uuid.UUID, disease DiseaseStatus, announcementID uuid.UUID) *Cat {
	t.Helper()
	cat := draftCatFor(t, personID, disease)
	require.NoError(t, cat.AssignToAnnouncement(announcementID, time.Now().UTC()))
	cat.PullEvents()
	return cat
}

// =====================================================
// ASSIGNMENT
// =====================================================

func TestAssign_PersonMismatch(t *testing.T) {
	svc := NewAssignmentService()
	cat := draftCatFor(t, uuid.New(), UntestedDiseaseStatus())
	announcement := activeAnnouncement(uuid.New())

	err := svc.Assign(cat, announcement, nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersonMismatch))
	assert.True(t, cat.IsDraft())
	assert.Empty(t, cat.PullEvents())
}

func TestAssign_CatAlreadyInCohortIsAHardFailure(t *testing.T) {
	svc := NewAssignmentService()
	personID := uuid.New()
	announcement := activeAnnouncement(personID)
	cat := draftCatFor(t, personID, UntestedDiseaseStatus())

	err := svc.Assign(cat, announcement, []*Cat{cat}, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyInCohort))
	assert.True(t, cat.IsDraft())
}

func TestAssign_ClaimedAnnouncementRejected(t *testing.T) {
	svc := NewAssignmentService()
	personID := uuid.New()
	cat := draftCatFor(t, personID, UntestedDiseaseStatus())

	err := svc.Assign(cat, claimedAnnouncement(t, personID), nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnnouncementUnavailable))
}

func TestAssign_DiseaseCompatibilityAgainstCohort(t *testing.T) {
	personID := uuid.New()
	announcement := activeAnnouncement(personID)
	fivPositive := DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}
	cohort := []*Cat{publishedCatFor(t, personID, fivPositive, announcement.ID)}

	tests := []struct {
		name    string
		disease DiseaseStatus
		wantErr bool
	}{
		{"fiv negative newcomer conflicts", DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative}, true},
		{"fiv positive newcomer joins", DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}, false},
		{"untested newcomer joins", UntestedDiseaseStatus(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssignmentService()
			cat := draftCatFor(t, personID, tt.disease)

			err := svc.Assign(cat, announcement, cohort, time.Now().UTC())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrDiseaseConflict))
				assert.True(t, cat.IsDraft(), "failed assignment must not mutate the cat")
				assert.Empty(t, cat.PullEvents())
				return
			}

			require.NoError(t, err)
			assert.True(t, cat.IsPublished())
			assert.Equal(t, announcement.ID, *cat.AnnouncementID)
			assert.Len(t, cat.PullEvents(), 1)
		})
	}
}

func TestAssign_ConflictNamesCatAndAnnouncement(t *testing.T) {
	personID := uuid.New()
	announcement := activeAnnouncement(personID)
	cohort := []*Cat{publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}, announcement.ID)}
	cat := draftCatFor(t, personID, DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative})

	err := NewAssignmentService().Assign(cat, announcement, cohort, time.Now().UTC())
	require.Error(t, err)

	assert.Contains(t, err.Error(), cat.ID.String())
	assert.Contains(t, err.Error(), announcement.ID.String())
}

func TestAssign_ValidationOrder_OwnershipBeforeDisease(t *testing.T) {
	// Both the owner check and the disease check would fail here; the
	// owner check must win.
	catOwner := uuid.New()
	announcementOwner := uuid.New()
	announcement := activeAnnouncement(announcementOwner)
	cohort := []*Cat{publishedCatFor(t, announcementOwner, DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}, announcement.ID)}
	cat := draftCatFor(t, catOwner, DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative})

	err := NewAssignmentService().Assign(cat, announcement, cohort, time.Now().UTC())
	assert.True(t, errors.Is(err, ErrPersonMismatch))
}

func TestAssign_LifecycleFailuresPropagate(t *testing.T) {
	svc := NewAssignmentService()
	personID := uuid.New()
	announcement := activeAnnouncement(personID)

	noThumbnail := NewCat(personID, "Bare", nil, UntestedDiseaseStatus(), time.Now().UTC())
	err := svc.Assign(noThumbnail, announcement, nil, time.Now().UTC())
	assert.True(t, errors.Is(err, ErrThumbnailRequired))

	published := publishedCatFor(t, personID, UntestedDiseaseStatus(), uuid.New())
	err = svc.Assign(published, announcement, nil, time.Now().UTC())
	assert.True(t, errors.Is(err, ErrNotDraft))
}

// =====================================================
// REASSIGNMENT
// =====================================================

func TestReassign_SourceMustBeActive(t *testing.T) {
	personID := uuid.New()
	source := claimedAnnouncement(t, personID)
	destination := activeAnnouncement(personID)
	cat := publishedCatFor(t, personID, UntestedDiseaseStatus(), source.ID)

	err := NewReassignmentService().Reassign(cat, source, destination, nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReassignSourceInactive))
	assert.Equal(t, source.ID, *cat.AnnouncementID)
}

func TestReassign_DestinationMustBeActive(t *testing.T) {
	personID := uuid.New()
	source := activeAnnouncement(personID)
	destination := claimedAnnouncement(t, personID)
	cat := publishedCatFor(t, personID, UntestedDiseaseStatus(), source.ID)

	err := NewReassignmentService().Reassign(cat, source, destination, nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReassignDestinationInactive))
}

func TestReassign_SameAnnouncementRejected(t *testing.T) {
	personID := uuid.New()
	source := activeAnnouncement(personID)
	cat := publishedCatFor(t, personID, UntestedDiseaseStatus(), source.ID)

	err := NewReassignmentService().Reassign(cat, source, source, nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReassignSameAnnouncement))
}

func TestReassign_AlreadyInDestinationCohort_WinsOverDisease(t *testing.T) {
	personID := uuid.New()
	source := activeAnnouncement(personID)
	destination := activeAnnouncement(personID)

	// The cat is compatible with nobody here, but the duplicate
	// membership check must fire first.
	cat := publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative}, source.ID)
	conflicting := publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}, destination.ID)

	err := NewReassignmentService().Reassign(cat, source, destination, []*Cat{conflicting, cat}, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReassignSameAnnouncement))
}

func TestReassign_DiseaseConflictNamesCatOnly(t *testing.T) {
	personID := uuid.New()
	source := activeAnnouncement(personID)
	destination := activeAnnouncement(personID)
	cat := publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerNegative, Felv: MarkerNegative}, source.ID)
	cohort := []*Cat{publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerPositive, Felv: MarkerNegative}, destination.ID)}

	err := NewReassignmentService().Reassign(cat, source, destination, cohort, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDiseaseConflict))

	assert.Contains(t, err.Error(), cat.ID.String())
	assert.NotContains(t, err.Error(), destination.ID.String())

	// the failed move leaves the cat on the source announcement
	assert.Equal(t, source.ID, *cat.AnnouncementID)
	assert.Empty(t, cat.PullEvents())
}

func TestReassign_Succeeds(t *testing.T) {
	personID := uuid.New()
	source := activeAnnouncement(personID)
	destination := activeAnnouncement(personID)
	cat := publishedCatFor(t, personID, UntestedDiseaseStatus(), source.ID)
	publishedAt := *cat.PublishedAt

	cohort := []*Cat{publishedCatFor(t, personID, DiseaseStatus{Fiv: MarkerNotTested, Felv: MarkerNegative}, destination.ID)}

	require.NoError(t, NewReassignmentService().Reassign(cat, source, destination, cohort, time.Now().UTC()))

	assert.True(t, cat.IsPublished())
	assert.Equal(t, destination.ID, *cat.AnnouncementID)
	assert.Equal(t, publishedAt, *cat.PublishedAt)

	events := cat.PullEvents()
	require.Len(t, events, 1)
	moved, ok := events[0].(CatReassignedEvent)
	require.True(t, ok)
	assert.Equal(t, source.ID, moved.FromAnnouncementID)
	assert.Equal(t, destination.ID, moved.ToAnnouncementID)
}
