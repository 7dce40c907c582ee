package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	annmodel "catadopt-backend/internal/domains/announcement/model"
	"catadopt-backend/internal/domains/cat/model"
	"catadopt-backend/internal/domains/cat/service"
	"catadopt-backend/internal/shared/middleware"
	"catadopt-backend/internal/shared/response"
)

type CatHandler struct {
	service service.ServiceInterface
}

func NewCatHandler(service service.ServiceInterface) *CatHandler {
	return &CatHandler{
		service: service,
	}
}

// CreateCat handles POST /cats
func (h *CatHandler) CreateCat(c *gin.Context) {
	personID, ok := getPersonID(c)
	if !ok {
		return
	}

	var req model.CreateCatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.CreateCat(c.Request.Context(), personID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetCat handles GET /cats/:id
func (h *CatHandler) GetCat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cat ID")
		return
	}

	result, err := h.service.GetCat(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMyCats handles GET /cats/mine
func (h *CatHandler) ListMyCats(c *gin.Context) {
	personID, ok := getPersonID(c)
	if !ok {
		return
	}

	result, err := h.service.ListMyCats(c.Request.Context(), personID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SetThumbnail handles PUT /cats/:id/thumbnail
func (h *CatHandler) SetThumbnail(c *gin.Context) {
	personID, catID, req, ok := bindCatAction[model.SetThumbnailRequest](c)
	if !ok {
		return
	}

	result, err := h.service.SetThumbnail(c.Request.Context(), personID, catID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AssignCat handles POST /cats/:id/assign
func (h *CatHandler) AssignCat(c *gin.Context) {
	personID, catID, req, ok := bindCatAction[model.AssignCatRequest](c)
	if !ok {
		return
	}

	result, err := h.service.AssignCat(c.Request.Context(), personID, catID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AssignCatToNewAnnouncement handles POST /cats/:id/assign-new
func (h *CatHandler) AssignCatToNewAnnouncement(c *gin.Context) {
	personID, catID, req, ok := bindCatAction[model.AssignToNewAnnouncementRequest](c)
	if !ok {
		return
	}

	result, err := h.service.AssignCatToNewAnnouncement(c.Request.Context(), personID, catID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ReassignCat handles POST /cats/:id/reassign
func (h *CatHandler) ReassignCat(c *gin.Context) {
	personID, catID, req, ok := bindCatAction[model.ReassignCatRequest](c)
	if !ok {
		return
	}

	result, err := h.service.ReassignCat(c.Request.Context(), personID, catID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UnassignCat handles POST /cats/:id/unassign
func (h *CatHandler) UnassignCat(c *gin.Context) {
	personID, catID, ok := personAndCatID(c)
	if !ok {
		return
	}

	result, err := h.service.UnassignCat(c.Request.Context(), personID, catID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ClaimCat handles POST /cats/:id/claim
func (h *CatHandler) ClaimCat(c *gin.Context) {
	personID, catID, ok := personAndCatID(c)
	if !ok {
		return
	}

	result, err := h.service.ClaimCat(c.Request.Context(), personID, catID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteCat handles DELETE /cats/:id
func (h *CatHandler) DeleteCat(c *gin.Context) {
	personID, catID, ok := personAndCatID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCat(c.Request.Context(), personID, catID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *CatHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL001", "Validation failed", vErrs)
		return
	}

	var catErr *model.CatError
	if errors.As(err, &catErr) {
		response.ErrorResponse(c, catStatusCode(err), catErr.Code, catErr.Message)
		return
	}

	var annErr *annmodel.AnnouncementError
	if errors.As(err, &annErr) {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, annmodel.ErrAnnouncementNotFound) {
			status = http.StatusNotFound
		}
		response.ErrorResponse(c, status, annErr.Code, annErr.Message)
		return
	}

	response.InternalServerError(c, "Something went wrong")
}

func catStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrCatNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNotCatOwner):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidArgument),
		errors.Is(err, model.ErrInvalidDiseaseMarker):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAlreadyClaimed),
		errors.Is(err, model.ErrAlreadyInCohort),
		errors.Is(err, model.ErrReassignSameAnnouncement),
		errors.Is(err, model.ErrDiseaseConflict):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// =====================================================
// REQUEST HELPERS
// =====================================================

func personAndCatID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	personID, ok := getPersonID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	catID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cat ID")
		return uuid.Nil, uuid.Nil, false
	}

	return personID, catID, true
}

func bindCatAction[T any](c *gin.Context) (uuid.UUID, uuid.UUID, T, bool) {
	var req T

	personID, catID, ok := personAndCatID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return uuid.Nil, uuid.Nil, req, false
	}

	return personID, catID, req, true
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
