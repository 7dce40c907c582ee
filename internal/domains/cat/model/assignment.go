package model

import (
	"time"

	annmodel "catadopt-backend/internal/domains/announcement/model"
)

// =====================================================
// ASSIGNMENT SERVICE
// =====================================================

// AssignmentService decides whether a draft cat may join an
// announcement cohort. It is stateless and performs no I/O: the caller
// loads the cat, the announcement and the cohort snapshot inside one
// unit of work and persists the mutated cat afterwards.
type AssignmentService struct{}

func NewAssignmentService() *AssignmentService {
	return &AssignmentService{}
}

// Assign validates the cat against the announcement and its current
// cohort, then publishes the cat into it. The cohort must exclude the
// cat being assigned; validation fully completes before any mutation.
func (s *AssignmentService) Assign(cat *Cat, announcement *annmodel.Announcement, cohort []*Cat, now time.Time) error {
	// Step 1: the cat and the announcement must share an owner.
	if cat.PersonID != announcement.PersonID {
		return NewPersonMismatchError(cat.PersonID, announcement.PersonID)
	}

	// Step 2: a cohort snapshot containing the cat is a caller bug,
	// never silently corrected.
	for _, member := range cohort {
		if member.ID == cat.ID {
			return NewAlreadyInCohortError(cat.ID, announcement.ID)
		}
	}

	// Step 3: a claimed announcement has a frozen cohort.
	if !announcement.IsActive() {
		return NewAnnouncementUnavailableError(announcement.ID, announcement.Status)
	}

	// Step 4: the cat must be disease-compatible with every cohort
	// member. First conflict wins; the offending member is deliberately
	// not named so the error is stable across cohort orderings.
	for _, member := range cohort {
		if !cat.Disease.IsCompatibleWith(member.Disease) {
			return NewDiseaseConflictError(cat.ID, announcement.ID)
		}
	}

	// Step 5: delegate the state transition. Not-draft and
	// missing-thumbnail failures propagate unchanged.
	return cat.AssignToAnnouncement(announcement.ID, now)
}

// =====================================================
// REASSIGNMENT SERVICE
// =====================================================

// ReassignmentService moves an already published cat between two
// announcements, revalidating against the destination cohort only.
type ReassignmentService struct{}

func NewReassignmentService() *ReassignmentService {
	return &ReassignmentService{}
}

// Reassign validates the move and switches the cat's announcement.
// destinationCohort must exclude the cat. Ownership between the cat and
// the destination is checked by the calling feature, not here.
func (s *ReassignmentService) Reassign(
	cat *Cat,
	source *annmodel.Announcement,
	destination *annmodel.Announcement,
	destinationCohort []*Cat,
	now time.Time,
) error {
	// Step 1: the cat cannot leave a claimed announcement.
	if !source.IsActive() {
		return NewSourceInactiveError(source.ID, source.Status)
	}

	// Step 2: nor join one.
	if !destination.IsActive() {
		return NewDestinationInactiveError(destination.ID, destination.Status)
	}

	// Step 3: same-announcement moves and duplicate membership are both
	// rejected before any compatibility work.
	if source.ID == destination.ID {
		return NewSameAnnouncementError(cat.ID, destination.ID)
	}
	for _, member := range destinationCohort {
		if member.ID == cat.ID {
			return NewSameAnnouncementError(cat.ID, destination.ID)
		}
	}

	// Step 4: disease compatibility against the destination cohort.
	// Unlike assignment, only the cat is named in the failure.
	for _, member := range destinationCohort {
		if !cat.Disease.IsCompatibleWith(member.Disease) {
			return NewReassignDiseaseConflictError(cat.ID)
		}
	}

	// Step 5: delegate. PublishedAt is untouched by the move.
	return cat.ReassignToAnotherAnnouncement(destination.ID, now)
}
