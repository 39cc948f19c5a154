package service

import (
	"errors"
	"fmt"

	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
)

// ChatService handles the message log of a room's chat. Only room members
// may read or write it.
type ChatService struct {
	rooms  repository.RoomRepository
	chats  repository.ChatRepository
	events EventPublisher
}

func NewChatService(rooms repository.RoomRepository, chats repository.ChatRepository, events EventPublisher) *ChatService {
	return &ChatService{rooms: rooms, chats: chats, events: events}
}

func (s *ChatService) roomChat(userID, roomID uint) (*models.Room, error) {
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room not found", ErrNotFound)
		}
		return nil, err
	}

	member, err := s.chats.IsMember(room.ChatID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: only room members can use the chat", ErrForbidden)
	}
	return room, nil
}

// SendMessage persists a message and broadcasts it to the room's stream.
func (s *ChatService) SendMessage(userID, roomID uint, content string) (*models.Message, error) {
	room, err := s.roomChat(userID, roomID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID:   room.ChatID,
		SenderID: &userID,
		Type:     models.MessageTypeText,
		Content:  content,
	}
	if err := s.chats.CreateMessage(msg); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(room.ID, "message", msg)
	}
	return msg, nil
}

// ListMessages returns the room chat's ordered log.
func (s *ChatService) ListMessages(userID, roomID uint) ([]models.Message, error) {
	room, err := s.roomChat(userID, roomID)
	if err != nil {
		return nil, err
	}
	return s.chats.ListMessages(room.ChatID)
}

// CanStream reports whether the user may subscribe to the room's event
// stream.
func (s *ChatService) CanStream(userID, roomID uint) error {
	_, err := s.roomChat(userID, roomID)
	return err
}
