package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawcare/internal/pkg/response"
	"pawcare/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers booking routes under the protected group
// (JWT required). Base path is /api/v1/bookings.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("/mine", h.ListMine)
		bookings.GET("/assigned", h.ListAssigned)
		bookings.GET("/open", h.ListOpen)
		bookings.GET("/:id", h.Get)

		bookings.POST("/:id/approve", h.Approve)
		bookings.POST("/:id/decline", h.Decline)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/claim", h.Claim)
		bookings.POST("/:id/begin", h.BeginWalk)
		bookings.POST("/:id/end", h.EndWalk)
	}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b, "walk_code": b.WalkCode})
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListForOwner(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) ListAssigned(c *gin.Context) {
	items, err := h.service.ListForSitter(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) ListOpen(c *gin.Context) {
	items, err := h.service.ListOpenPostings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) Approve(c *gin.Context) {
	b, err := h.service.Approve(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Decline(c *gin.Context) {
	b, err := h.service.Decline(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Claim(c *gin.Context) {
	b, err := h.service.Claim(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) BeginWalk(c *gin.Context) {
	var req BeginWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.BeginWalk(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) EndWalk(c *gin.Context) {
	b, err := h.service.EndWalk(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// respondError maps service errors onto the error envelope. Every code
// is distinguishable so clients can prompt re-entry (bad code), show a
// permission message, or refresh stale state (lost transition race).
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", err.Error())
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrInvalidCode):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_CODE", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, repository.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "storage temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
	}
}
