// Package service implements the business rules on top of the repository
// ports: identity lifecycle, matchmaking profiles, and the room / join
// request state machine.
package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrTokenExpired       = errors.New("token expired")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrAlreadyInRoom      = errors.New("already in a room")
	ErrRoomFull           = errors.New("room is full")
	ErrRequestResolved    = errors.New("join request already resolved")
	ErrIncompleteProfile  = errors.New("matchmaking profile is incomplete")
	ErrValidation         = errors.New("validation failed")
)
