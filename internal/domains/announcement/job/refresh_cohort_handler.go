package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"catadopt-backend/internal/domains/announcement/model"
	"catadopt-backend/internal/domains/announcement/repository"
	catrepo "catadopt-backend/internal/domains/cat/repository"
	"catadopt-backend/internal/shared"
	"catadopt-backend/internal/shared/utils"
	"catadopt-backend/pkg/cache"
	"catadopt-backend/pkg/logger"
)

const (
	cohortSizeCacheKeyFmt = "announcement:%s:cohort_size"
	cohortSizeCacheTTL    = 10 * time.Minute
)

// RefreshCohortSizesHandler recomputes the cohort-size projection for
// active announcements. Lifecycle events keep individual entries fresh;
// this scheduled sweep rebuilds entries that expired between events.
type RefreshCohortSizesHandler struct {
	announcementRepo repository.AnnouncementRepository
	catRepo          catrepo.CatRepository
	cache            cache.Cache
}

func NewRefreshCohortSizesHandler(
	announcementRepo repository.AnnouncementRepository,
	catRepo catrepo.CatRepository,
	cache cache.Cache,
) *RefreshCohortSizesHandler {
	return &RefreshCohortSizesHandler{
		announcementRepo: announcementRepo,
		catRepo:          catRepo,
		cache:            cache,
	}
}

func (h *RefreshCohortSizesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RefreshCohortSizesPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		return err
	}
	if payload.Limit <= 0 {
		payload.Limit = 100
	}

	announcements, _, err := h.announcementRepo.List(ctx, model.AnnouncementStatusActive, 1, payload.Limit)
	if err != nil {
		return fmt.Errorf("list active announcements: %w", err)
	}

	refreshed := 0
	for i := range announcements {
		id := announcements[i].ID

		cohort, err := h.catRepo.ListByAnnouncement(ctx, id)
		if err != nil {
			logger.Warn("failed to load cohort during refresh", map[string]interface{}{
				"announcement_id": id,
				"error":           err.Error(),
			})
			continue
		}

		key := fmt.Sprintf(cohortSizeCacheKeyFmt, id)
		if err := h.cache.Set(ctx, key, len(cohort), cohortSizeCacheTTL); err != nil {
			logger.Warn("failed to cache cohort size", map[string]interface{}{
				"announcement_id": id,
				"error":           err.Error(),
			})
			continue
		}
		refreshed++
	}

	logger.Info("cohort size refresh completed", map[string]interface{}{
		"scanned":   len(announcements),
		"refreshed": refreshed,
	})
	return nil
}
