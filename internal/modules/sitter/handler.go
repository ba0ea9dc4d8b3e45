package sitter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawcare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the sitter catalog.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/sitters", h.List)
	rg.GET("/sitters/:id", h.Get)
}

// RegisterProtectedRoutes exposes profile management for sitter users.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/sitters/me", h.CreateProfile)
	rg.PUT("/sitters/me", h.UpdateProfile)
	rg.GET("/sitters/me", h.GetMine)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sitters": items})
}

func (h *Handler) Get(c *gin.Context) {
	profile, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSitterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sitter": profile})
}

func (h *Handler) CreateProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		respondSitterError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sitter": profile})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		respondSitterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sitter": profile})
}

func (h *Handler) GetMine(c *gin.Context) {
	profile, err := h.service.GetMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondSitterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sitter": profile})
}

func respondSitterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrProfileExists):
		response.Error(c, http.StatusConflict, "PROFILE_EXISTS", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
	}
}
