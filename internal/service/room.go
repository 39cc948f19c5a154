package service

import (
	"errors"
	"fmt"

	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
)

// ProfileGate answers whether a user is allowed to enter matchmaking.
type ProfileGate interface {
	HasCompleteProfile(userID uint) (bool, error)
}

// EventPublisher pushes room events to connected clients. A nil publisher
// disables the push path without affecting the state machine.
type EventPublisher interface {
	Publish(roomID uint, eventType string, payload interface{})
}

// RoomService owns room formation and the join-request state machine:
// pending → accepted | rejected, both terminal. Accept is guarded by the
// room capacity and cascades deletion of the sender's other pending
// requests.
type RoomService struct {
	rooms    repository.RoomRepository
	requests repository.JoinRequestRepository
	chats    repository.ChatRepository
	gate     ProfileGate
	events   EventPublisher
}

func NewRoomService(
	rooms repository.RoomRepository,
	requests repository.JoinRequestRepository,
	chats repository.ChatRepository,
	gate ProfileGate,
	events EventPublisher,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		requests: requests,
		chats:    chats,
		gate:     gate,
		events:   events,
	}
}

func (s *RoomService) publish(roomID uint, eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(roomID, eventType, payload)
	}
}

// requireMatchmakable rejects users without a complete profile or who are
// already leading or sitting in a room.
func (s *RoomService) requireMatchmakable(userID uint) error {
	complete, err := s.gate.HasCompleteProfile(userID)
	if err != nil {
		return err
	}
	if !complete {
		return ErrIncompleteProfile
	}

	inRoom, err := s.rooms.UserInAnyRoom(userID)
	if err != nil {
		return err
	}
	if inRoom {
		return ErrAlreadyInRoom
	}
	return nil
}

// CreateRoom opens a room of the given kind with the creator as leader and
// sole member. A chat is created alongside.
func (s *RoomService) CreateRoom(userID uint, kind models.RoomKind, description, joinCode string) (*models.Room, error) {
	capacity, ok := models.CapacityForKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown room kind %q", ErrValidation, kind)
	}

	if err := s.requireMatchmakable(userID); err != nil {
		return nil, err
	}

	room := &models.Room{
		Kind:        kind,
		Capacity:    capacity,
		Description: description,
		JoinCode:    joinCode,
		LeaderID:    userID,
		Ready:       false,
	}
	if err := s.rooms.Create(room); err != nil {
		return nil, err
	}
	return s.rooms.FindByID(room.ID)
}

// GetRoom loads one room with leader and members.
func (s *RoomService) GetRoom(id uint) (*models.Room, error) {
	room, err := s.rooms.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room not found", ErrNotFound)
		}
		return nil, err
	}
	return room, nil
}

// ListOpen pages through rooms with free slots.
func (s *RoomService) ListOpen(kind models.RoomKind, page, limit int) ([]models.Room, int64, error) {
	if kind != "" {
		if _, ok := models.CapacityForKind(kind); !ok {
			return nil, 0, fmt.Errorf("%w: unknown room kind %q", ErrValidation, kind)
		}
	}
	return s.rooms.ListOpen(kind, page, limit)
}

// RequestJoin files a pending join request against the room.
func (s *RoomService) RequestJoin(userID, roomID uint) (*models.JoinRequest, error) {
	if _, err := s.GetRoom(roomID); err != nil {
		return nil, err
	}

	if err := s.requireMatchmakable(userID); err != nil {
		return nil, err
	}

	req := &models.JoinRequest{
		SenderID: userID,
		RoomID:   roomID,
		Status:   models.RequestPending,
	}
	if err := s.requests.Create(req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: join request already sent", ErrConflict)
		}
		return nil, err
	}
	return req, nil
}

// ListRequests returns the room's join requests to its leader and marks
// them seen.
func (s *RoomService) ListRequests(leaderID, roomID uint) ([]models.JoinRequest, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if room.LeaderID != leaderID {
		return nil, fmt.Errorf("%w: only the room leader can view join requests", ErrForbidden)
	}

	reqs, err := s.requests.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	if err := s.requests.MarkSeen(roomID); err != nil {
		return nil, err
	}
	return reqs, nil
}

// resolve loads the request and checks the leader's authority and the
// pending precondition shared by accept and reject.
func (s *RoomService) resolve(leaderID, roomID, requestID uint) (*models.JoinRequest, *models.Room, error) {
	req, err := s.requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: join request not found", ErrNotFound)
		}
		return nil, nil, err
	}
	if req.RoomID != roomID {
		return nil, nil, fmt.Errorf("%w: join request not found", ErrNotFound)
	}

	room, err := s.GetRoom(roomID)
	if err != nil {
		return nil, nil, err
	}
	if room.LeaderID != leaderID {
		return nil, nil, fmt.Errorf("%w: only the room leader can resolve join requests", ErrForbidden)
	}
	if req.Status != models.RequestPending {
		return nil, nil, fmt.Errorf("%w: request is %s", ErrRequestResolved, req.Status)
	}
	return req, room, nil
}

// AcceptRequest admits the sender if the room has a free slot. On a full
// room it fails with ErrRoomFull and leaves both the request and the
// membership untouched. On success every other pending request by the same
// sender is purged, and the room is flagged ready once it fills up.
func (s *RoomService) AcceptRequest(leaderID, roomID, requestID uint) error {
	req, room, err := s.resolve(leaderID, roomID, requestID)
	if err != nil {
		return err
	}

	if room.IsFull() {
		return fmt.Errorf("%w: maximum %d members allowed", ErrRoomFull, room.Capacity)
	}

	ready := len(room.Members)+1 >= room.Capacity
	if err := s.rooms.Admit(room.ID, room.ChatID, req.ID, req.SenderID, ready); err != nil {
		return err
	}

	if ready {
		s.publish(room.ID, "room_ready", nil)
	}
	s.publish(room.ID, "member_joined", req.SenderID)
	return nil
}

// RejectRequest marks the request rejected. Membership never changes.
func (s *RoomService) RejectRequest(leaderID, roomID, requestID uint) error {
	req, _, err := s.resolve(leaderID, roomID, requestID)
	if err != nil {
		return err
	}
	return s.requests.UpdateStatus(req.ID, models.RequestRejected)
}

// Leave removes the user from their current room. An emptied room is
// deleted with its chat; a departing leader hands the room to the oldest
// remaining member.
func (s *RoomService) Leave(userID uint) error {
	room, err := s.rooms.FindByMember(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user is not in a room", ErrNotFound)
		}
		return err
	}

	if err := s.rooms.RemoveMember(room.ID, userID); err != nil {
		return err
	}
	if err := s.chats.RemoveMember(room.ChatID, userID); err != nil {
		return err
	}

	remaining := 0
	for _, member := range room.Members {
		if member.ID != userID {
			remaining++
		}
	}

	if remaining == 0 {
		if err := s.rooms.Delete(room.ID); err != nil {
			return err
		}
		return s.chats.Delete(room.ChatID)
	}

	if room.LeaderID == userID {
		successor, err := s.rooms.OldestMember(room.ID, userID)
		if err != nil {
			return err
		}
		if err := s.rooms.SetLeader(room.ID, successor); err != nil {
			return err
		}
		s.publish(room.ID, "leader_changed", successor)
	}

	// A departure reopens a slot, so a full room stops being ready.
	if room.Ready {
		if err := s.rooms.SetReady(room.ID, false); err != nil {
			return err
		}
	}
	s.publish(room.ID, "member_left", userID)
	return nil
}
