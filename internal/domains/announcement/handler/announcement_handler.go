package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catadopt-backend/internal/domains/announcement/model"
	"catadopt-backend/internal/domains/announcement/service"
	"catadopt-backend/internal/shared/middleware"
	"catadopt-backend/internal/shared/response"
)

type AnnouncementHandler struct {
	service service.ServiceInterface
}

func NewAnnouncementHandler(service service.ServiceInterface) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
	}
}

// ListAnnouncements handles GET /announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var req model.ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.ListAnnouncements(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetAnnouncement handles GET /announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid announcement ID")
		return
	}

	result, err := h.service.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMyAnnouncements handles GET /announcements/mine
func (h *AnnouncementHandler) ListMyAnnouncements(c *gin.Context) {
	personID, ok := getPersonID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.ListMyAnnouncements(c.Request.Context(), personID, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MarkClaimed handles POST /announcements/:id/claim
func (h *AnnouncementHandler) MarkClaimed(c *gin.Context) {
	personID, ok := getPersonID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid announcement ID")
		return
	}

	if err := h.service.MarkClaimed(c.Request.Context(), personID, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": model.AnnouncementStatusClaimed})
}

func (h *AnnouncementHandler) handleError(c *gin.Context, err error) {
	var annErr *model.AnnouncementError
	if errors.As(err, &annErr) {
		switch {
		case errors.Is(err, model.ErrAnnouncementNotFound):
			response.ErrorResponse(c, http.StatusNotFound, annErr.Code, annErr.Message)
		case errors.Is(err, model.ErrNotOwner):
			response.ErrorResponse(c, http.StatusForbidden, annErr.Code, annErr.Message)
		case errors.Is(err, model.ErrAlreadyClaimed):
			response.ErrorResponse(c, http.StatusConflict, annErr.Code, annErr.Message)
		default:
			response.ErrorResponse(c, http.StatusUnprocessableEntity, annErr.Code, annErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Something went wrong")
}

func getPersonID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.PersonIDKey)
	if !exists {
		response.Unauthorized(c, "missing authentication")
		return uuid.Nil, false
	}

	personID, ok := value.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "invalid authentication context")
		return uuid.Nil, false
	}

	return personID, true
}
