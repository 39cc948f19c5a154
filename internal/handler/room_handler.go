package handler

import (
	"net/http"
	"strconv"

	"valomate/backend/internal/models"
	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RoomInput defines the user-settable room fields.
type RoomInput struct {
	Description string `json:"description" binding:"required,max=500" example:"Chill ranked grind, mic required"`
	JoinCode    string `json:"join_code" binding:"required,max=20" example:"ABC123"`
}

// MemberResponse is a room member in responses.
type MemberResponse struct {
	ID       uint   `json:"id" example:"2"`
	Username string `json:"username" example:"teammate"`
}

// RoomResponse is the full view of a room.
type RoomResponse struct {
	ID          uint             `json:"id" example:"1"`
	Kind        string           `json:"kind" example:"duo"`
	Capacity    int              `json:"capacity" example:"2"`
	Description string           `json:"description"`
	JoinCode    string           `json:"join_code"`
	Ready       bool             `json:"ready"`
	Leader      MemberResponse   `json:"leader"`
	Members     []MemberResponse `json:"members"`
}

func newRoomResponse(room models.Room) RoomResponse {
	members := make([]MemberResponse, 0, len(room.Members))
	for _, member := range room.Members {
		members = append(members, MemberResponse{ID: member.ID, Username: member.Username})
	}

	return RoomResponse{
		ID:          room.ID,
		Kind:        string(room.Kind),
		Capacity:    room.Capacity,
		Description: room.Description,
		JoinCode:    room.JoinCode,
		Ready:       room.Ready,
		Leader:      MemberResponse{ID: room.Leader.ID, Username: room.Leader.Username},
		Members:     members,
	}
}

// JoinRequestResponse is a join request in responses.
type JoinRequestResponse struct {
	ID     uint           `json:"id" example:"1"`
	Sender MemberResponse `json:"sender"`
	Status string         `json:"status" example:"pending"`
	IsSeen bool           `json:"is_seen"`
}

func newJoinRequestResponse(req models.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:     req.ID,
		Sender: MemberResponse{ID: req.Sender.ID, Username: req.Sender.Username},
		Status: string(req.Status),
		IsSeen: req.IsSeen,
	}
}

// endregion

// roomKinds maps URL segments to room kinds.
var roomKinds = map[string]models.RoomKind{
	"duo":    models.RoomDuo,
	"trio":   models.RoomTrio,
	"5stack": models.RoomFiveStack,
}

type RoomHandler struct {
	rooms *service.RoomService
}

func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  Opens a duo/trio/5stack room with the caller as leader and sole member. Requires a complete matchmaking profile.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path string    true "Room kind" Enums(duo, trio, 5stack)
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Matchmaking profile incomplete"
// @Failure      409  {object}  ErrorResponse "Caller is already in a room"
// @Router       /rooms/create/{kind} [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	kind, ok := roomKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown room kind"})
		return
	}

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.CreateRoom(userID.(uint), kind, input.Description, input.JoinCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRoomResponse(*room))
}

// SearchRooms godoc
// @Summary      Search for open rooms
// @Description  Gets a paginated list of rooms with free slots, optionally filtered by kind.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        kind  query string false "Filter by kind" Enums(duo, trio, 5stack)
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[RoomResponse]
// @Router       /rooms [get]
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var kind models.RoomKind
	if kindParam := c.Query("kind"); kindParam != "" {
		var ok bool
		kind, ok = roomKinds[kindParam]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown room kind"})
			return
		}
	}

	rooms, totalItems, err := h.rooms.ListOpen(kind, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, newRoomResponse(room))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(resp, totalItems, page, limit))
}

// GetRoom godoc
// @Summary      Get a room by ID
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	room, err := h.rooms.GetRoom(uint(roomID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(*room))
}

// RequestJoin godoc
// @Summary      Request to join a room
// @Description  Files a pending join request for the room leader to resolve.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      201 {object} JoinRequestResponse
// @Failure      403 {object} ErrorResponse "Matchmaking profile incomplete"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      409 {object} ErrorResponse "Duplicate request or caller already in a room"
// @Router       /rooms/{id}/join [post]
func (h *RoomHandler) RequestJoin(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	req, err := h.rooms.RequestJoin(userID.(uint), uint(roomID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": req.ID, "status": req.Status})
}

// ListJoinRequests godoc
// @Summary      List a room's join requests (Leader only)
// @Description  Returns the join requests of the room and marks them seen.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {array} JoinRequestResponse
// @Failure      403 {object} ErrorResponse "Only the room leader can view join requests"
// @Router       /rooms/{id}/join-requests [get]
func (h *RoomHandler) ListJoinRequests(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	reqs, err := h.rooms.ListRequests(userID.(uint), uint(roomID))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]JoinRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		resp = append(resp, newJoinRequestResponse(req))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) requestIDs(c *gin.Context) (uint, uint, bool) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return 0, 0, false
	}
	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return 0, 0, false
	}
	return uint(roomID), uint(requestID), true
}

// AcceptJoinRequest godoc
// @Summary      Accept a join request (Leader only)
// @Description  Admits the sender if the room has a free slot and purges their other pending requests. A full room rejects the accept without changing anything.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Room ID"
// @Param        requestID path int true "Join request ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse "Only the room leader can resolve join requests"
// @Failure      404 {object} ErrorResponse "Room or request not found"
// @Failure      409 {object} ErrorResponse "Room is full or request already resolved"
// @Router       /rooms/{id}/join-requests/{requestID}/accept [put]
func (h *RoomHandler) AcceptJoinRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, requestID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.rooms.AcceptRequest(userID.(uint), roomID, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Join request accepted and user added to the room."})
}

// RejectJoinRequest godoc
// @Summary      Reject a join request (Leader only)
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Room ID"
// @Param        requestID path int true "Join request ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse "Only the room leader can resolve join requests"
// @Failure      404 {object} ErrorResponse "Room or request not found"
// @Failure      409 {object} ErrorResponse "Request already resolved"
// @Router       /rooms/{id}/join-requests/{requestID}/reject [put]
func (h *RoomHandler) RejectJoinRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, requestID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.rooms.RejectRequest(userID.(uint), roomID, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Join request rejected."})
}

// LeaveRoom godoc
// @Summary      Leave the current room
// @Description  Leaves the room the caller is in. Handles leader migration and deletes an emptied room with its chat.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Caller is not in a room"
// @Router       /rooms/leave [post]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := h.rooms.Leave(userID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left room successfully"})
}
