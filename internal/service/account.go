// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/repository"
)

// AccountService handles player registration.
type AccountService struct {
	store repository.Store
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(store repository.Store) *AccountService {
	return &AccountService{store: store}
}

// EnsureUser ensures a user exists, creating one if necessary.
// Returns the user and whether it was newly created.
func (s *AccountService) EnsureUser(ctx context.Context, telegramID int64, username string) (*model.User, bool, error) {
	user, err := s.store.Users().GetByID(ctx, telegramID)
	if err == nil {
		if username != "" && user.Username != username {
			if err := s.store.Users().UpdateUsername(ctx, telegramID, username); err != nil {
				log.Ctx(ctx).Warn().Err(err).Int64("user_id", telegramID).Msg("failed to refresh username")
			} else {
				user.Username = username
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	user, err = s.store.Users().Create(ctx, telegramID, username)
	if errors.Is(err, repository.ErrDuplicate) {
		// Created concurrently by another update from the same user.
		user, err = s.store.Users().GetByID(ctx, telegramID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get user: %w", err)
		}
		return user, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	log.Ctx(ctx).Info().Int64("user_id", telegramID).Str("username", username).Msg("registered new player")
	return user, true, nil
}

// GetUser retrieves a user by their Telegram ID.
func (s *AccountService) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.store.Users().GetByID(ctx, telegramID)
}
