package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"valomate/backend/internal/mailer"
	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
	"valomate/backend/internal/resettoken"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ProfileDeleter removes all profile rows of a user on account deletion.
type ProfileDeleter interface {
	DeleteByUser(userID uint) error
}

// RequestDeleter removes all join requests of a user on account deletion.
type RequestDeleter interface {
	DeleteByUser(userID uint) error
}

// RoomLeaver detaches a user from their current room, handling leader
// succession and emptied rooms. Satisfied by RoomService.
type RoomLeaver interface {
	Leave(userID uint) error
}

// IdentityService owns registration, email verification and credential
// management. Accounts stay inactive until the mailed token is redeemed.
type IdentityService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	profiles      ProfileDeleter
	requests      RequestDeleter
	rooms         RoomLeaver
	resetTokens   resettoken.Store
	mail          mailer.Mailer
	clock         repository.Clock
	baseURL       string
}

func NewIdentityService(
	users repository.UserRepository,
	verifications repository.VerificationRepository,
	profiles ProfileDeleter,
	requests RequestDeleter,
	rooms RoomLeaver,
	resetTokens resettoken.Store,
	mail mailer.Mailer,
	clock repository.Clock,
	baseURL string,
) *IdentityService {
	return &IdentityService{
		users:         users,
		verifications: verifications,
		profiles:      profiles,
		requests:      requests,
		rooms:         rooms,
		resetTokens:   resetTokens,
		mail:          mail,
		clock:         clock,
		baseURL:       baseURL,
	}
}

// Register creates an inactive account and mails a verification link. A
// mail failure fails the whole request.
func (s *IdentityService) Register(username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "user",
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrConflict)
		}
		return nil, err
	}

	if err := s.issueVerification(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) issueVerification(user *models.User) error {
	v := &models.EmailVerification{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: s.clock.Now(),
	}
	if err := s.verifications.Create(v); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.baseURL, v.Token)
	body := "Click the link to verify your email: " + link
	return s.mail.Send(user.Email, "Verify your email", body)
}

// VerifyEmail redeems a verification token, activating the account and
// deleting the token. Unknown tokens map to ErrNotFound, expired ones to
// ErrTokenExpired.
func (s *IdentityService) VerifyEmail(token string) error {
	v, err := s.verifications.FindByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: unknown verification token", ErrNotFound)
		}
		return err
	}
	if !v.IsValid(s.clock.Now()) {
		return ErrTokenExpired
	}

	user, err := s.users.FindByID(v.UserID)
	if err != nil {
		return err
	}
	user.IsActive = true
	if err := s.users.Update(user); err != nil {
		return err
	}
	return s.verifications.Delete(v.ID)
}

// ResendVerification replaces a stale token with a fresh one. While the
// previous token is still valid the call is rejected, so at most one live
// token exists per user.
func (s *IdentityService) ResendVerification(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no account for this email", ErrNotFound)
		}
		return err
	}
	if user.IsActive {
		return ErrAlreadyVerified
	}

	existing, err := s.verifications.FindByUser(user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		if existing.IsValid(s.clock.Now()) {
			return fmt.Errorf("%w: a verification email was already sent", ErrConflict)
		}
		if err := s.verifications.Delete(existing.ID); err != nil {
			return err
		}
	}

	return s.issueVerification(user)
}

// Login checks credentials. Unverified accounts cannot log in.
func (s *IdentityService) Login(login, password string) (*models.User, error) {
	user, err := s.users.FindByLogin(login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrNotVerified
	}
	return user, nil
}

// GetUser loads a user by ID.
func (s *IdentityService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangeUsername renames the account if the name is free.
func (s *IdentityService) ChangeUsername(userID uint, username string) error {
	taken, err := s.users.UsernameTaken(username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: username already taken", ErrConflict)
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	user.Username = username
	return s.users.Update(user)
}

// ChangePassword verifies the old password, sets the new one and mails a
// notice to the account's address.
func (s *IdentityService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: old password is incorrect", ErrInvalidCredentials)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	if err := s.users.Update(user); err != nil {
		return err
	}

	return s.mail.Send(user.Email, "Your password has been changed",
		"This is to inform you that your password has been successfully changed.")
}

// ForgotPassword mints a single-use reset token and mails the reset link.
func (s *IdentityService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no account for this email", ErrNotFound)
		}
		return err
	}

	token := uuid.NewString()
	if err := s.resetTokens.Issue(ctx, user.ID, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/auth/reset-password/%d/%s", s.baseURL, user.ID, token)
	return s.mail.Send(user.Email, "Reset your password",
		"Click the link to reset your password: "+link)
}

// ResetPassword redeems a reset token and sets the new password.
func (s *IdentityService) ResetPassword(ctx context.Context, uid, token, newPassword string) error {
	userID, err := strconv.ParseUint(uid, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	user, err := s.users.FindByID(uint(userID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: invalid token", ErrValidation)
		}
		return err
	}

	if err := s.resetTokens.Consume(ctx, user.ID, token); err != nil {
		if errors.Is(err, resettoken.ErrInvalidToken) {
			return fmt.Errorf("%w: invalid token", ErrValidation)
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	if err := s.users.Update(user); err != nil {
		return err
	}

	return s.mail.Send(user.Email, "Your password has been changed",
		"This is to inform you that your password has been successfully changed.")
}

// DeleteAccount removes the user and their dependent records.
// Order: room membership (with leader succession), join requests,
// profiles, then the user row; verification tokens go with the user via
// the cascade constraint.
func (s *IdentityService) DeleteAccount(userID uint) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.rooms != nil {
		if err := s.rooms.Leave(user.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	if s.requests != nil {
		if err := s.requests.DeleteByUser(user.ID); err != nil {
			return err
		}
	}
	if s.profiles != nil {
		if err := s.profiles.DeleteByUser(user.ID); err != nil {
			return err
		}
	}
	return s.users.Delete(user.ID)
}
