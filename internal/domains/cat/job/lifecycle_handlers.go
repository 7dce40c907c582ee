package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"catadopt-backend/internal/domains/cat/model"
	"catadopt-backend/internal/domains/cat/repository"
	"catadopt-backend/internal/shared/utils"
	"catadopt-backend/pkg/cache"
	"catadopt-backend/pkg/logger"
)

const (
	cohortSizeCacheKeyFmt = "announcement:%s:cohort_size"
	cohortSizeCacheTTL    = 10 * time.Minute
)

// =====================================================
// CAT ASSIGNED
// =====================================================

// CatAssignedHandler refreshes the cohort-size projection when a cat
// joins an announcement.
type CatAssignedHandler struct {
	catRepo repository.CatRepository
	cache   cache.Cache
}

func NewCatAssignedHandler(catRepo repository.CatRepository, cache cache.Cache) *CatAssignedHandler {
	return &CatAssignedHandler{catRepo: catRepo, cache: cache}
}

func (h *CatAssignedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.CatAssignedPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		// Corrupt payload, retrying cannot fix it
		return err
	}

	logger.Info("cat assigned to announcement", map[string]interface{}{
		"cat_id":          payload.CatID,
		"announcement_id": payload.AnnouncementID,
	})

	return refreshCohortSize(ctx, h.catRepo, h.cache, payload.AnnouncementID)
}

// =====================================================
// CAT REASSIGNED
// =====================================================

// CatReassignedHandler refreshes the projections on both sides of a
// cohort move.
type CatReassignedHandler struct {
	catRepo repository.CatRepository
	cache   cache.Cache
}

func NewCatReassignedHandler(catRepo repository.CatRepository, cache cache.Cache) *CatReassignedHandler {
	return &CatReassignedHandler{catRepo: catRepo, cache: cache}
}

func (h *CatReassignedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.CatReassignedPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		return err
	}

	logger.Info("cat reassigned between announcements", map[string]interface{}{
		"cat_id": payload.CatID,
		"from":   payload.FromAnnouncementID,
		"to":     payload.ToAnnouncementID,
	})

	if err := refreshCohortSize(ctx, h.catRepo, h.cache, payload.FromAnnouncementID); err != nil {
		return err
	}
	return refreshCohortSize(ctx, h.catRepo, h.cache, payload.ToAnnouncementID)
}

// =====================================================
// CAT UNASSIGNED
// =====================================================

type CatUnassignedHandler struct {
	catRepo repository.CatRepository
	cache   cache.Cache
}

func NewCatUnassignedHandler(catRepo repository.CatRepository, cache cache.Cache) *CatUnassignedHandler {
	return &CatUnassignedHandler{catRepo: catRepo, cache: cache}
}

func (h *CatUnassignedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.CatUnassignedPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		return err
	}

	logger.Info("cat unassigned from announcement", map[string]interface{}{
		"cat_id":          payload.CatID,
		"announcement_id": payload.AnnouncementID,
	})

	return refreshCohortSize(ctx, h.catRepo, h.cache, payload.AnnouncementID)
}

// =====================================================
// CAT CLAIMED
// =====================================================

// CatClaimedHandler records the adoption and drops the stale cohort
// projection for the announcement.
type CatClaimedHandler struct {
	cache cache.Cache
}

func NewCatClaimedHandler(cache cache.Cache) *CatClaimedHandler {
	return &CatClaimedHandler{cache: cache}
}

func (h *CatClaimedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.CatClaimedPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		return err
	}

	logger.Info("cat claimed", map[string]interface{}{
		"cat_id":          payload.CatID,
		"announcement_id": payload.AnnouncementID,
		"claimed_at":      payload.ClaimedAt,
	})

	if err := h.cache.Delete(ctx, fmt.Sprintf(cohortSizeCacheKeyFmt, payload.AnnouncementID)); err != nil {
		logger.Warn("failed to drop cohort size cache", map[string]interface{}{
			"announcement_id": payload.AnnouncementID,
			"error":           err.Error(),
		})
	}
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func refreshCohortSize(ctx context.Context, catRepo repository.CatRepository, c cache.Cache, announcementID uuid.UUID) error {
	cohort, err := catRepo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		// DB error, let asynq retry
		return err
	}

	key := fmt.Sprintf(cohortSizeCacheKeyFmt, announcementID)
	if err := c.Set(ctx, key, len(cohort), cohortSizeCacheTTL); err != nil {
		return fmt.Errorf("cache cohort size for %s: %w", announcementID, err)
	}
	return nil
}
