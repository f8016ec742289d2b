package handlers

import (
	"net/http"

	"voyago/models"
	"voyago/services/planner"
	"voyago/services/session"
	"voyago/services/storage"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the planner pipeline to the UI boundary.
type ChatHandler struct {
	Planner     planner.PlannerService
	Sessions    session.Store
	Attachments storage.AttachmentFetcher
}

func NewChatHandler(plannerSvc planner.PlannerService, sessions session.Store, attachments storage.AttachmentFetcher) *ChatHandler {
	return &ChatHandler{Planner: plannerSvc, Sessions: sessions, Attachments: attachments}
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID     string           `json:"sessionId,omitempty"`
	Text          string           `json:"text" binding:"required"`
	AttachmentURL string           `json:"attachmentUrl,omitempty"`
	Location      *models.GeoPoint `json:"location,omitempty"`
}

// ChatResponse carries the assistant turn plus the session the UI should
// hold on to.
type ChatResponse struct {
	SessionID string                   `json:"sessionId"`
	State     models.ConversationState `json:"state"`
	Turn      *models.ChatTurn         `json:"turn"`
}

// HandleChatTurn advances the conversation one user turn.
func (h *ChatHandler) HandleChatTurn(c *gin.Context) {
	logger := utils.GetLogger()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}
	userID := c.GetString("userID")

	ctx := c.Request.Context()
	sess, err := h.loadOrCreateSession(c, req.SessionID, userID)
	if err != nil {
		logger.Error("chat: session load failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
		return
	}
	if req.Location != nil {
		sess.Location = *req.Location
	}

	// The interpreter needs the actual bytes, not just the URL the upload
	// endpoint returned.
	var image *models.ImageAttachment
	if req.AttachmentURL != "" {
		image, err = h.Attachments.Fetch(ctx, req.AttachmentURL)
		if err != nil {
			logger.Error("chat: attachment fetch failed", zap.String("url", req.AttachmentURL), zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Could not load the attachment", "")
			return
		}
	}

	turn, err := h.Planner.AdvanceConversation(ctx, sess, req.Text, image)
	if err != nil {
		logger.Error("chat: pipeline failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not process the message", "")
		return
	}

	if err := h.Sessions.Save(ctx, sess); err != nil {
		logger.Error("chat: session save failed", zap.String("sessionId", sess.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
		return
	}

	c.JSON(http.StatusOK, ChatResponse{SessionID: sess.ID, State: sess.State, Turn: turn})
}

// GetSession returns the stored session history.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
		return
	}
	if sess == nil || sess.UserID != c.GetString("userID") {
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ClearSession deletes the stored session.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	sess, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
		return
	}
	if sess == nil || sess.UserID != c.GetString("userID") {
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
		return
	}
	if err := h.Sessions.Clear(c.Request.Context(), sess.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *ChatHandler) loadOrCreateSession(c *gin.Context, sessionID, userID string) (*models.ConversationSession, error) {
	ctx := c.Request.Context()
	if sessionID != "" {
		sess, err := h.Sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if sess != nil && sess.UserID == userID {
			return sess, nil
		}
	}
	return h.Sessions.Create(ctx, userID)
}
