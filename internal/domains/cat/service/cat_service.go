package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	annmodel "catadopt-backend/internal/domains/announcement/model"
	annrepo "catadopt-backend/internal/domains/announcement/repository"
	"catadopt-backend/internal/domains/cat/model"
	"catadopt-backend/internal/domains/cat/repository"
	"catadopt-backend/internal/shared"
	"catadopt-backend/pkg/database"
	"catadopt-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type catService struct {
	pool             *pgxpool.Pool
	catRepo          repository.CatRepository
	announcementRepo annrepo.AnnouncementRepository
	asynqClient      *asynq.Client

	assignment *model.AssignmentService
	reassign   *model.ReassignmentService
}

func NewCatService(
	pool *pgxpool.Pool,
	catRepo repository.CatRepository,
	announcementRepo annrepo.AnnouncementRepository,
	asynqClient *asynq.Client,
) ServiceInterface {
	return &catService{
		pool:             pool,
		catRepo:          catRepo,
		announcementRepo: announcementRepo,
		asynqClient:      asynqClient,
		assignment:       model.NewAssignmentService(),
		reassign:         model.NewReassignmentService(),
	}
}

// =====================================================
// CRUD
// =====================================================

func (s *catService) CreateCat(ctx context.Context, personID uuid.UUID, req model.CreateCatRequest) (*model.CatResponse, error) {
	// Step 1: validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: build the disease value object
	disease, err := model.NewDiseaseStatus(
		model.DiseaseMarker(req.Fiv),
		model.DiseaseMarker(req.Felv),
	)
	if err != nil {
		return nil, err
	}

	// Step 3: create and persist the draft cat
	cat := model.NewCat(personID, req.Name, req.Description, disease, time.Now().UTC())
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create cat: %w", err)
	}

	return cat.ToResponse(), nil
}

func (s *catService) GetCat(ctx context.Context, id uuid.UUID) (*model.CatResponse, error) {
	cat, err := s.catRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cat.ToResponse(), nil
}

func (s *catService) ListMyCats(ctx context.Context, personID uuid.UUID) (*model.ListCatsResponse, error) {
	cats, err := s.catRepo.ListByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cats: %w", err)
	}

	responses := make([]model.CatResponse, 0, len(cats))
	for _, cat := range cats {
		responses = append(responses, *cat.ToResponse())
	}
	return &model.ListCatsResponse{Cats: responses}, nil
}

func (s *catService) SetThumbnail(ctx context.Context, personID, catID uuid.UUID, req model.SetThumbnailRequest) (*model.CatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return nil, err
	}
	if cat.PersonID != personID {
		return nil, model.NewNotOwnerError(catID, personID)
	}

	if err := cat.SetThumbnail(req.ThumbnailID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.catRepo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat.ToResponse(), nil
}

// =====================================================
// ASSIGNMENT
// =====================================================

// AssignCat places a draft cat into an existing announcement.
//
// The announcement row is locked first so concurrent assignments into
// the same announcement serialize; each one then validates against a
// cohort snapshot that already includes the other's cat.
func (s *catService) AssignCat(ctx context.Context, personID, catID uuid.UUID, req model.AssignCatRequest) (*model.CatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	cat, err := database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (*model.Cat, error) {
		// Step 1: lock the announcement (cohort boundary)
		announcement, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, req.AnnouncementID)
		if err != nil {
			return nil, err
		}

		// Step 2: lock and authorize the cat
		cat, err := s.catRepo.GetByIDForUpdate(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		if cat.PersonID != personID {
			return nil, model.NewNotOwnerError(catID, personID)
		}

		// Step 3: load the cohort inside the same transaction
		cohort, err := s.catRepo.ListByAnnouncementWithTx(ctx, tx, announcement.ID)
		if err != nil {
			return nil, err
		}

		// Step 4: run the assignment rules and transition the cat
		if err := s.assignment.Assign(cat, announcement, cohortExcluding(cohort, cat.ID), now); err != nil {
			return nil, err
		}

		// Step 5: persist
		if err := s.catRepo.UpdateWithTx(ctx, tx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	// Step 6: publish events after commit
	s.enqueueEvents(cat.PullEvents())

	return cat.ToResponse(), nil
}

// AssignCatToNewAnnouncement creates an announcement and publishes the
// cat as its first member, atomically.
func (s *catService) AssignCatToNewAnnouncement(ctx context.Context, personID, catID uuid.UUID, req model.AssignToNewAnnouncementRequest) (*model.CatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	cat, err := database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (*model.Cat, error) {
		// Step 1: lock and authorize the cat
		cat, err := s.catRepo.GetByIDForUpdate(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		if cat.PersonID != personID {
			return nil, model.NewNotOwnerError(catID, personID)
		}

		// Step 2: create the announcement. The cohort is empty by
		// construction, nothing to validate against.
		announcement := annmodel.NewAnnouncement(personID, req.Title, req.Description, now)
		if err := s.announcementRepo.CreateWithTx(ctx, tx, announcement); err != nil {
			return nil, err
		}

		// Step 3: run the assignment rules and transition the cat
		if err := s.assignment.Assign(cat, announcement, nil, now); err != nil {
			return nil, err
		}

		// Step 4: persist the cat
		if err := s.catRepo.UpdateWithTx(ctx, tx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueEvents(cat.PullEvents())

	return cat.ToResponse(), nil
}

// ReassignCat moves a published cat into a different announcement.
//
// Both announcement rows are locked in ascending id order so two
// crossing reassignments cannot deadlock.
func (s *catService) ReassignCat(ctx context.Context, personID, catID uuid.UUID, req model.ReassignCatRequest) (*model.CatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	cat, err := database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (*model.Cat, error) {
		// Step 1: lock and authorize the cat
		cat, err := s.catRepo.GetByIDForUpdate(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		if cat.PersonID != personID {
			return nil, model.NewNotOwnerError(catID, personID)
		}
		if cat.AnnouncementID == nil {
			return nil, model.NewNotAssignedError(catID)
		}

		// Step 2: lock source and destination in ascending id order
		source, destination, err := s.lockAnnouncementPair(ctx, tx, *cat.AnnouncementID, req.AnnouncementID)
		if err != nil {
			return nil, err
		}

		// Step 3: the destination must belong to the cat's owner.
		// The engine leaves this to us.
		if destination.PersonID != cat.PersonID {
			return nil, model.NewPersonMismatchError(cat.PersonID, destination.PersonID)
		}

		// Step 4: load the destination cohort inside the transaction
		cohort, err := s.catRepo.ListByAnnouncementWithTx(ctx, tx, destination.ID)
		if err != nil {
			return nil, err
		}

		// Step 5: run the reassignment rules and transition the cat
		if err := s.reassign.Reassign(cat, source, destination, cohortExcluding(cohort, cat.ID), now); err != nil {
			return nil, err
		}

		// Step 6: persist
		if err := s.catRepo.UpdateWithTx(ctx, tx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueEvents(cat.PullEvents())

	return cat.ToResponse(), nil
}

// UnassignCat pulls a published cat back to draft. Removing a cat can
// never introduce a cohort incompatibility, so only the cat's own
// announcement is locked, to serialize with assignments in flight.
func (s *catService) UnassignCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error) {
	now := time.Now().UTC()

	cat, err := database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (*model.Cat, error) {
		cat, err := s.catRepo.GetByIDForUpdate(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		if cat.PersonID != personID {
			return nil, model.NewNotOwnerError(catID, personID)
		}

		if cat.AnnouncementID != nil {
			if _, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, *cat.AnnouncementID); err != nil {
				return nil, err
			}
		}

		if err := cat.UnassignFromAnnouncement(now); err != nil {
			return nil, err
		}

		if err := s.catRepo.UpdateWithTx(ctx, tx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueEvents(cat.PullEvents())

	return cat.ToResponse(), nil
}

// ClaimCat marks a published cat as adopted.
func (s *catService) ClaimCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error) {
	now := time.Now().UTC()

	cat, err := database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (*model.Cat, error) {
		cat, err := s.catRepo.GetByIDForUpdate(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		if cat.PersonID != personID {
			return nil, model.NewNotOwnerError(catID, personID)
		}

		if err := cat.Claim(now); err != nil {
			return nil, err
		}

		if err := s.catRepo.UpdateWithTx(ctx, tx, cat); err != nil {
			return nil, err
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueEvents(cat.PullEvents())

	return cat.ToResponse(), nil
}

// DeleteCat soft-deletes a cat. A claimed cat is part of a completed
// adoption and can never be deleted.
func (s *catService) DeleteCat(ctx context.Context, personID, catID uuid.UUID) error {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return err
	}
	if cat.PersonID != personID {
		return model.NewNotOwnerError(catID, personID)
	}
	if cat.IsClaimed() {
		return model.NewDeleteClaimedError(catID)
	}

	return s.catRepo.SoftDelete(ctx, catID)
}

// =====================================================
// HELPERS
// =====================================================

// cohortExcluding strips the cat under consideration from the cohort
// snapshot; the rule services require it absent.
func cohortExcluding(cohort []*model.Cat, catID uuid.UUID) []*model.Cat {
	filtered := make([]*model.Cat, 0, len(cohort))
	for _, member := range cohort {
		if member.ID != catID {
			filtered = append(filtered, member)
		}
	}
	return filtered
}

// lockAnnouncementPair locks two announcement rows in ascending id
// order and returns them as (source, destination).
func (s *catService) lockAnnouncementPair(ctx context.Context, tx pgx.Tx, sourceID, destinationID uuid.UUID) (*annmodel.Announcement, *annmodel.Announcement, error) {
	if sourceID == destinationID {
		announcement, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, sourceID)
		if err != nil {
			return nil, nil, err
		}
		return announcement, announcement, nil
	}

	firstID, secondID := sourceID, destinationID
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.announcementRepo.GetByIDForUpdate(ctx, tx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}

// enqueueEvents fans lifecycle events out to the task queue. Called
// after commit only; failures are logged, never propagated, since the
// state change already happened.
func (s *catService) enqueueEvents(events []model.Event) {
	for _, event := range events {
		taskType, payload, err := taskForEvent(event)
		if err != nil {
			logger.Error("failed to build task for event "+event.EventName(), err)
			continue
		}

		task := asynq.NewTask(taskType, payload)
		if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueNotifications), asynq.MaxRetry(3)); err != nil {
			logger.Error("failed to enqueue "+taskType+" task", err)
		}
	}
}

func taskForEvent(event model.Event) (string, []byte, error) {
	switch e := event.(type) {
	case model.CatAssignedEvent:
		payload, err := json.Marshal(model.CatAssignedPayload{
			CatID:          e.CatID,
			AnnouncementID: e.AnnouncementID,
			OccurredAt:     e.OccurredAt,
		})
		return shared.TypeCatAssigned, payload, err
	case model.CatReassignedEvent:
		payload, err := json.Marshal(model.CatReassignedPayload{
			CatID:              e.CatID,
			FromAnnouncementID: e.FromAnnouncementID,
			ToAnnouncementID:   e.ToAnnouncementID,
			OccurredAt:         e.OccurredAt,
		})
		return shared.TypeCatReassigned, payload, err
	case model.CatUnassignedEvent:
		payload, err := json.Marshal(model.CatUnassignedPayload{
			CatID:          e.CatID,
			AnnouncementID: e.AnnouncementID,
			OccurredAt:     e.OccurredAt,
		})
		return shared.TypeCatUnassigned, payload, err
	case model.CatClaimedEvent:
		payload, err := json.Marshal(model.CatClaimedPayload{
			CatID:          e.CatID,
			AnnouncementID: e.AnnouncementID,
			ClaimedAt:      e.ClaimedAt,
		})
		return shared.TypeCatClaimed, payload, err
	default:
		return "", nil, fmt.Errorf("unknown event type %q", event.EventName())
	}
}
