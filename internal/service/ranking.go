package service

import (
	"context"
	"fmt"
	"time"

	"daily-word-bot/internal/model"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/repository"
)

// DefaultLeaderboardSize is the number of rows shown by /today_top.
const DefaultLeaderboardSize = 10

// RankingService handles the daily leaderboard.
type RankingService struct {
	store repository.Store
	clock clock.Clock
}

// NewRankingService creates a new RankingService instance.
func NewRankingService(store repository.Store, clk clock.Clock) *RankingService {
	return &RankingService{store: store, clock: clk}
}

// DailyLeaderboard lists today's winners: fewest guesses first, then fewest
// hints, then earliest finish.
func (s *RankingService) DailyLeaderboard(ctx context.Context, limit int) ([]*model.DailyRank, error) {
	return s.LeaderboardForDate(ctx, clock.Today(s.clock), limit)
}

// LeaderboardForDate lists the winners of a specific date.
func (s *RankingService) LeaderboardForDate(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	ranks, err := s.store.Sessions().Ranking(ctx, clock.Day(date), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return ranks, nil
}
