package pet

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

// RegisterRoutes registers pet routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pets := rg.Group("/pets")
	{
		pets.POST("", h.Create)
		pets.GET("", h.ListMine)
		pets.GET("/:id", h.Get)
		pets.PUT("/:id", h.Update)
		pets.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req UpsertPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pet": p})
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pets": items})
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": p})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpsertPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": p})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func respondPetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
	}
}
