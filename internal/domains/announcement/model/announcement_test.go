package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnouncement_StartsActive(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	a := NewAnnouncement(uuid.New(), "Bonded pair", nil, now)

	assert.True(t, a.IsActive())
	assert.False(t, a.IsClaimed())
	assert.Nil(t, a.ClaimedAt)
	assert.Equal(t, now, a.CreatedAt)
}

func TestMarkClaimed(t *testing.T) {
	a := NewAnnouncement(uuid.New(), "Bonded pair", nil, time.Now().UTC())
	claimedAt := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)

	require.NoError(t, a.MarkClaimed(claimedAt))

	assert.True(t, a.IsClaimed())
	require.NotNil(t, a.ClaimedAt)
	assert.Equal(t, claimedAt, *a.ClaimedAt)
}

func TestMarkClaimed_TwiceFails(t *testing.T) {
	a := NewAnnouncement(uuid.New(), "Bonded pair", nil, time.Now().UTC())
	require.NoError(t, a.MarkClaimed(time.Now().UTC()))

	err := a.MarkClaimed(time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))

	var annErr *AnnouncementError
	require.True(t, errors.As(err, &annErr))
	assert.Equal(t, ErrCodeAlreadyClaimed, annErr.Code)
}

func TestListAnnouncementsRequest_Validate(t *testing.T) {
	req := ListAnnouncementsRequest{Status: "archived"}
	assert.Error(t, req.Validate())

	req = ListAnnouncementsRequest{Status: AnnouncementStatusActive, Page: 0, Limit: 500}
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)
}
