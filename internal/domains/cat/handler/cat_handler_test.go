package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catadopt-backend/internal/domains/cat/model"
	"catadopt-backend/internal/shared/middleware"
)

// -------------------------
// Stub service
// -------------------------

type stubService struct {
	assignErr error
	claimErr  error
	deleteErr error
	response  *model.CatResponse
}

func (s *stubService) CreateCat(ctx context.Context, personID uuid.UUID, req model.CreateCatRequest) (*model.CatResponse, error) {
	return s.response, nil
}

func (s *stubService) GetCat(ctx context.Context, id uuid.UUID) (*model.CatResponse, error) {
	return s.response, nil
}

func (s *stubService) ListMyCats(ctx context.Context, personID uuid.UUID) (*model.ListCatsResponse, error) {
	return &model.ListCatsResponse{Cats: []model.CatResponse{}}, nil
}

func (s *stubService) SetThumbnail(ctx context.Context, personID, catID uuid.UUID, req model.SetThumbnailRequest) (*model.CatResponse, error) {
	return s.response, nil
}

func (s *stubService) AssignCat(ctx context.Context, personID, catID uuid.UUID, req model.AssignCatRequest) (*model.CatResponse, error) {
	if s.assignErr != nil {
		return nil, s.assignErr
	}
	return s.response, nil
}

func (s *stubService) AssignCatToNewAnnouncement(ctx context.Context, personID, catID uuid.UUID, req model.AssignToNewAnnouncementRequest) (*model.CatResponse, error) {
	return s.response, nil
}

func (s *stubService) ReassignCat(ctx context.Context, personID, catID uuid.UUID, req model.ReassignCatRequest) (*model.CatResponse, error) {
	if s.assignErr != nil {
		return nil, s.assignErr
	}
	return s.response, nil
}

func (s *stubService) UnassignCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error) {
	return s.response, nil
}

func (s *stubService) ClaimCat(ctx context.Context, personID, catID uuid.UUID) (*model.CatResponse, error) {
	if s.claimErr != nil {
		return nil, s.claimErr
	}
	return s.response, nil
}

func (s *stubService) DeleteCat(ctx context.Context, personID, catID uuid.UUID) error {
	return s.deleteErr
}

// -------------------------
// Helpers
// -------------------------

func setupRouter(svc *stubService, personID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// stand-in for the auth middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.PersonIDKey, personID)
	})

	h := NewCatHandler(svc)
	router.POST("/cats/:id/assign", h.AssignCat)
	router.POST("/cats/:id/claim", h.ClaimCat)
	router.DELETE("/cats/:id", h.DeleteCat)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// -------------------------
// Tests
// -------------------------

func TestAssignCat_MapsDomainErrors(t *testing.T) {
	catID := uuid.New()
	announcementID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", model.NewNotFoundError(catID), http.StatusNotFound, model.ErrCodeCatNotFound},
		{"not owner", model.NewNotOwnerError(catID, uuid.New()), http.StatusForbidden, model.ErrCodeNotOwner},
		{"disease conflict", model.NewDiseaseConflictError(catID, announcementID), http.StatusConflict, model.ErrCodeDiseaseConflict},
		{"thumbnail required", model.NewThumbnailRequiredError(catID), http.StatusUnprocessableEntity, model.ErrCodeThumbnailRequired},
		{"not draft", model.NewNotDraftError(catID, model.CatStatusPublished), http.StatusUnprocessableEntity, model.ErrCodeNotDraft},
		{"announcement closed", model.NewAnnouncementUnavailableError(announcementID, "claimed"), http.StatusUnprocessableEntity, model.ErrCodeAnnouncementClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&stubService{assignErr: tt.err}, uuid.New())

			w := doJSON(t, router, http.MethodPost, "/cats/"+catID.String()+"/assign",
				model.AssignCatRequest{AnnouncementID: announcementID})

			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestAssignCat_InvalidCatIDIsBadRequest(t *testing.T) {
	router := setupRouter(&stubService{}, uuid.New())
	w := doJSON(t, router, http.MethodPost, "/cats/not-a-uuid/assign",
		model.AssignCatRequest{AnnouncementID: uuid.New()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimCat_Success(t *testing.T) {
	catID := uuid.New()
	svc := &stubService{response: &model.CatResponse{ID: catID, Status: model.CatStatusClaimed}}
	router := setupRouter(svc, uuid.New())

	w := doJSON(t, router, http.MethodPost, "/cats/"+catID.String()+"/claim", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    *model.CatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.Equal(t, model.CatStatusClaimed, body.Data.Status)
}

func TestDeleteCat_ClaimedIsRejected(t *testing.T) {
	catID := uuid.New()
	router := setupRouter(&stubService{deleteErr: model.NewDeleteClaimedError(catID)}, uuid.New())

	w := doJSON(t, router, http.MethodDelete, "/cats/"+catID.String(), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
