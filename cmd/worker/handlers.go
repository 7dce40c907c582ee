package main

import (
	"github.com/hibiken/asynq"

	annJob "catadopt-backend/internal/domains/announcement/job"
	catJob "catadopt-backend/internal/domains/cat/job"
	"catadopt-backend/internal/shared"
	"catadopt-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Lifecycle handlers
	catAssigned   *catJob.CatAssignedHandler
	catReassigned *catJob.CatReassignedHandler
	catUnassigned *catJob.CatUnassignedHandler
	catClaimed    *catJob.CatClaimedHandler

	// Maintenance handlers
	refreshCohortSizes *annJob.RefreshCohortSizesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		catAssigned:   catJob.NewCatAssignedHandler(c.CatRepo, c.Cache),
		catReassigned: catJob.NewCatReassignedHandler(c.CatRepo, c.Cache),
		catUnassigned: catJob.NewCatUnassignedHandler(c.CatRepo, c.Cache),
		catClaimed:    catJob.NewCatClaimedHandler(c.Cache),

		refreshCohortSizes: annJob.NewRefreshCohortSizesHandler(
			c.AnnouncementRepo,
			c.CatRepo,
			c.Cache,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Lifecycle tasks
	mux.HandleFunc(shared.TypeCatAssigned, h.catAssigned.ProcessTask)
	mux.HandleFunc(shared.TypeCatReassigned, h.catReassigned.ProcessTask)
	mux.HandleFunc(shared.TypeCatUnassigned, h.catUnassigned.ProcessTask)
	mux.HandleFunc(shared.TypeCatClaimed, h.catClaimed.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeRefreshCohortSizes, h.refreshCohortSizes.ProcessTask)
}
