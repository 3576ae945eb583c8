package handler

import (
	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/service"
)

// RankingHandler handles ranking-related commands.
type RankingHandler struct {
	rankingService *service.RankingService
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// HandleTodayTop handles the /today_top command.
func (h *RankingHandler) HandleTodayTop(c tele.Context) error {
	ranks, err := h.rankingService.DailyLeaderboard(Context(c), service.DefaultLeaderboardSize)
	if err != nil {
		return replyError(c, err, "load the leaderboard")
	}
	return c.Reply(RenderLeaderboard(ranks))
}
