package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pawcare/internal/domain"
	"pawcare/internal/pkg/logger"
	"pawcare/internal/pkg/response"
	"pawcare/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin browsers are fine; participants are checked per scope
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers chat routes under the protected group (JWT
// required). Base path is /api/v1/chat.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/scopes", h.ListScopes)
		chatGroup.POST("/conversations", h.CreateConversation)

		chatGroup.GET("/bookings/:id/messages", h.historyHandler(ScopeBooking))
		chatGroup.POST("/bookings/:id/messages", h.sendHandler(ScopeBooking))
		chatGroup.GET("/bookings/:id/ws", h.streamHandler(ScopeBooking))

		chatGroup.GET("/conversations/:id/messages", h.historyHandler(ScopeConversation))
		chatGroup.POST("/conversations/:id/messages", h.sendHandler(ScopeConversation))
		chatGroup.GET("/conversations/:id/ws", h.streamHandler(ScopeConversation))
	}
}

func (h *Handler) CreateConversation(c *gin.Context) {
	userID := c.GetString("user_id")
	role := domain.UserRole(c.GetString("role"))

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	conv, err := h.service.GetOrCreateConversation(c.Request.Context(), userID, role, req.CounterpartID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"conversation": conv})
}

func (h *Handler) ListScopes(c *gin.Context) {
	entries, err := h.service.ListChatScopes(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scopes": entries})
}

func (h *Handler) historyHandler(kind ScopeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		scope := Scope{Kind: kind, ID: c.Param("id")}

		var afterID int64
		if v := c.Query("after_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "after_id must be integer")
				return
			}
			afterID = id
		}

		msgs, err := h.service.History(c.Request.Context(), scope, userID, afterID)
		if err != nil {
			respondChatError(c, err)
			return
		}

		items := make([]*MessageResponse, 0, len(msgs))
		for i := range msgs {
			items = append(items, ToMessageResponse(&msgs[i], userID))
		}
		response.Success(c, http.StatusOK, gin.H{"messages": items})
	}
}

func (h *Handler) sendHandler(kind ScopeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		scope := Scope{Kind: kind, ID: c.Param("id")}

		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		msg, err := h.service.Send(c.Request.Context(), scope, userID, req.Body)
		if err != nil {
			respondChatError(c, err)
			return
		}

		response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg, userID)})
	}
}

// streamHandler upgrades to a websocket and streams the scope's feed:
// replay after the since_id watermark first, then live messages, deduped
// by message id across the handoff. Inbound frames are treated as sends.
func (h *Handler) streamHandler(kind ScopeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		scope := Scope{Kind: kind, ID: c.Param("id")}

		var sinceID int64
		if v := c.Query("since_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "since_id must be integer")
				return
			}
			sinceID = id
		}

		sub, replay, err := h.service.Subscribe(c.Request.Context(), scope, userID, sinceID)
		if err != nil {
			respondChatError(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			sub.Cancel()
			return
		}
		defer conn.Close()
		defer sub.Cancel()

		var lastID int64
		for i := range replay {
			if err := conn.WriteJSON(ToMessageResponse(&replay[i], userID)); err != nil {
				return
			}
			lastID = replay[i].ID
		}

		// read pump: inbound frames become sends on the same scope
		go func() {
			for {
				var req SendMessageRequest
				if err := conn.ReadJSON(&req); err != nil {
					sub.Cancel()
					return
				}
				if _, err := h.service.Send(c.Request.Context(), scope, userID, req.Body); err != nil {
					logger.Get().Debug("ws send rejected",
						zap.String("scope", scope.Key()),
						zap.Error(err),
					)
				}
			}
		}()

		for msg := range sub.Messages() {
			if msg.ID <= lastID {
				continue
			}
			if err := conn.WriteJSON(ToMessageResponse(msg, userID)); err != nil {
				return
			}
			lastID = msg.ID
		}
	}
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyBody), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", err.Error())
	case errors.Is(err, ErrScopeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, repository.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "storage temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
	}
}
