package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftCat(t *testing.T, withThumbnail bool) *Cat {
	t.Helper()

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	cat := NewCat(uuid.New(), "Miso", nil, UntestedDiseaseStatus(), now)
	if withThumbnail {
		require.NoError(t, cat.SetThumbnail(uuid.New(), now))
	}
	// drop events from setup
	cat.PullEvents()
	return cat
}

func TestNewCat_StartsAsDraft(t *testing.T) {
	cat := newDraftCat(t, false)

	assert.True(t, cat.IsDraft())
	assert.Nil(t, cat.AnnouncementID)
	assert.Nil(t, cat.PublishedAt)
	assert.Nil(t, cat.ClaimedAt)
	assert.Empty(t, cat.PullEvents())
}

func TestAssignToAnnouncement_RequiresThumbnail(t *testing.T) {
	cat := newDraftCat(t, false)
	now := time.Now().UTC()

	err := cat.AssignToAnnouncement(uuid.New(), now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrThumbnailRequired))

	// no partial mutation, no event
	assert.True(t, cat.IsDraft())
	assert.Nil(t, cat.AnnouncementID)
	assert.Nil(t, cat.PublishedAt)
	assert.Empty(t, cat.PullEvents())
}

func TestAssignToAnnouncement_Succeeds(t *testing.T) {
	cat := newDraftCat(t, true)
	announcementID := uuid.New()
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, cat.AssignToAnnouncement(announcementID, now))

	assert.True(t, cat.IsPublished())
	require.NotNil(t, cat.AnnouncementID)
	assert.Equal(t, announcementID, *cat.AnnouncementID)
	require.NotNil(t, cat.PublishedAt)
	assert.Equal(t, now, *cat.PublishedAt)

	events := cat.PullEvents()
	require.Len(t, events, 1)
	assigned, ok := events[0].(CatAssignedEvent)
	require.True(t, ok)
	assert.Equal(t, cat.ID, assigned.CatID)
	assert.Equal(t, announcementID, assigned.AnnouncementID)

	// events are drained, not replayed
	assert.Empty(t, cat.PullEvents())
}

func TestAssignToAnnouncement_RejectsNonDraft(t *testing.T) {
	cat := newDraftCat(t, true)
	require.NoError(t, cat.AssignToAnnouncement(uuid.New(), time.Now().UTC()))
	cat.PullEvents()

	before := *cat
	err := cat.AssignToAnnouncement(uuid.New(), time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotDraft))

	assert.Equal(t, before.Status, cat.Status)
	assert.Equal(t, *before.AnnouncementID, *cat.AnnouncementID)
	assert.Empty(t, cat.PullEvents())
}

func TestAssignToAnnouncement_RejectsEmptyID(t *testing.T) {
	cat := newDraftCat(t, true)

	err := cat.AssignToAnnouncement(uuid.Nil, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, cat.IsDraft())
}

func TestReassign_KeepsPublishedAt(t *testing.T) {
	cat := newDraftCat(t, true)
	publishedAt := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	first := uuid.New()
	require.NoError(t, cat.AssignToAnnouncement(first, publishedAt))
	cat.PullEvents()

	second := uuid.New()
	later := publishedAt.Add(48 * time.Hour)
	require.NoError(t, cat.ReassignToAnotherAnnouncement(second, later))

	assert.True(t, cat.IsPublished())
	assert.Equal(t, second, *cat.AnnouncementID)
	assert.Equal(t, publishedAt, *cat.PublishedAt, "reassignment must not touch PublishedAt")

	events := cat.PullEvents()
	require.Len(t, events, 1)
	reassigned, ok := events[0].(CatReassignedEvent)
	require.True(t, ok)
	assert.Equal(t, first, reassigned.FromAnnouncementID)
	assert.Equal(t, second, reassigned.ToAnnouncementID)
}

func TestReassign_RejectsDraftAndClaimed(t *testing.T) {
	draft := newDraftCat(t, true)
	err := draft.ReassignToAnotherAnnouncement(uuid.New(), time.Now().UTC())
	assert.True(t, errors.Is(err, ErrNotPublished))

	claimed := newDraftCat(t, true)
	require.NoError(t, claimed.AssignToAnnouncement(uuid.New(), time.Now().UTC()))
	require.NoError(t, claimed.Claim(time.Now().UTC()))
	claimed.PullEvents()

	err = claimed.ReassignToAnotherAnnouncement(uuid.New(), time.Now().UTC())
	assert.True(t, errors.Is(err, ErrNotPublished))
	assert.Empty(t, claimed.PullEvents())
}

func TestUnassign_ResetsAllThreeFieldsTogether(t *testing.T) {
	cat := newDraftCat(t, true)
	announcementID := uuid.New()
	require.NoError(t, cat.AssignToAnnouncement(announcementID, time.Now().UTC()))
	cat.PullEvents()

	require.NoError(t, cat.UnassignFromAnnouncement(time.Now().UTC()))

	assert.True(t, cat.IsDraft())
	assert.Nil(t, cat.AnnouncementID)
	assert.Nil(t, cat.PublishedAt)

	events := cat.PullEvents()
	require.Len(t, events, 1)
	unassigned, ok := events[0].(CatUnassignedEvent)
	require.True(t, ok)
	assert.Equal(t, announcementID, unassigned.AnnouncementID)
}

func TestUnassign_RejectsDraftAndClaimed(t *testing.T) {
	draft := newDraftCat(t, true)
	err := draft.UnassignFromAnnouncement(time.Now().UTC())
	assert.True(t, errors.Is(err, ErrNotPublished))

	claimed := newDraftCat(t, true)
	require.NoError(t, claimed.AssignToAnnouncement(uuid.New(), time.Now().UTC()))
	require.NoError(t, claimed.Claim(time.Now().UTC()))
	claimed.PullEvents()

	err = claimed.UnassignFromAnnouncement(time.Now().UTC())
	assert.True(t, errors.Is(err, ErrNotPublished))
}

func TestClaim_OnlyFromPublished(t *testing.T) {
	draft := newDraftCat(t, true)
	err := draft.Claim(time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCannotClaimDraft))
	assert.Empty(t, draft.PullEvents())

	cat := newDraftCat(t, true)
	require.NoError(t, cat.AssignToAnnouncement(uuid.New(), time.Now().UTC()))
	cat.PullEvents()

	claimedAt := time.Date(2026, 8, 10, 15, 30, 0, 0, time.UTC)
	require.NoError(t, cat.Claim(claimedAt))

	assert.True(t, cat.IsClaimed())
	require.NotNil(t, cat.ClaimedAt)
	assert.Equal(t, claimedAt, *cat.ClaimedAt)
	require.NotNil(t, cat.AnnouncementID, "claim keeps the announcement link")

	events := cat.PullEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(CatClaimedEvent)
	require.True(t, ok)
}

func TestClaim_TwiceFailsSecondTime(t *testing.T) {
	cat := newDraftCat(t, true)
	require.NoError(t, cat.AssignToAnnouncement(uuid.New(), time.Now().UTC()))
	require.NoError(t, cat.Claim(time.Now().UTC()))
	cat.PullEvents()

	err := cat.Claim(time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))
	assert.Empty(t, cat.PullEvents())
}

func TestSetThumbnail_RejectsEmptyID(t *testing.T) {
	cat := newDraftCat(t, false)
	err := cat.SetThumbnail(uuid.Nil, time.Now().UTC())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, cat.HasThumbnail())
}
