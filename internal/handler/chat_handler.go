package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"valomate/backend/internal/hub"
	"valomate/backend/internal/models"
	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MessageInput is a chat message as submitted by the client.
type MessageInput struct {
	Content string `json:"content" binding:"required,max=500" example:"gl hf"`
}

// ChatMessageResponse is one chat log entry.
type ChatMessageResponse struct {
	ID      uint      `json:"id" example:"1"`
	Sender  string    `json:"sender,omitempty" example:"testuser"`
	Type    string    `json:"type" example:"text"`
	Content string    `json:"content" example:"gl hf"`
	SentAt  time.Time `json:"sent_at"`
}

func newChatMessageResponse(msg models.Message) ChatMessageResponse {
	return ChatMessageResponse{
		ID:      msg.ID,
		Sender:  msg.Sender.Username,
		Type:    string(msg.Type),
		Content: msg.Content,
		SentAt:  msg.CreatedAt,
	}
}

// endregion

type ChatHandler struct {
	chat *service.ChatService
	hub  *hub.Hub
}

func NewChatHandler(chat *service.ChatService, h *hub.Hub) *ChatHandler {
	return &ChatHandler{chat: chat, hub: h}
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Persists the message in the room chat and broadcasts it on the room stream. Members only.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Room ID"
// @Param        input body MessageInput true "Message"
// @Success      201 {object} ChatMessageResponse
// @Failure      403 {object} ErrorResponse "Only room members can use the chat"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/chat/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.SendMessage(userID.(uint), uint(roomID), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newChatMessageResponse(*msg))
}

// ListMessages godoc
// @Summary      Get the room chat log
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {array} ChatMessageResponse
// @Failure      403 {object} ErrorResponse "Only room members can use the chat"
// @Router       /rooms/{id}/chat/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	msgs, err := h.chat.ListMessages(userID.(uint), uint(roomID))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		resp = append(resp, newChatMessageResponse(msg))
	}
	c.JSON(http.StatusOK, resp)
}

// StreamEvents godoc
// @Summary      Subscribe to the room event stream (SSE)
// @Description  Streams chat messages and membership events for the room as server-sent events. Members only.
// @Tags         chat
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {string} string "event stream"
// @Failure      403 {object} ErrorResponse "Only room members can use the chat"
// @Router       /rooms/{id}/chat/stream [get]
func (h *ChatHandler) StreamEvents(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	if err := h.chat.CanStream(userID.(uint), uint(roomID)); err != nil {
		respondError(c, err)
		return
	}

	client := make(hub.Client, 16)
	h.hub.Subscribe(uint(roomID), client)
	defer h.hub.Unsubscribe(uint(roomID), client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
