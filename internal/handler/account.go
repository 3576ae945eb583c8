package handler

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/service"
)

// AccountHandler handles player registration.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

const helpText = "Commands:\n" +
	"/play - open today's game\n" +
	"/guess <word> - guess the word\n" +
	"/hint <type> - reveal a hint (costs a life)\n" +
	"/hints - list hint types\n" +
	"/today_top - today's leaderboard"

// HandleStart handles the /start command.
func (h *AccountHandler) HandleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	username := displayName(sender)

	_, created, err := h.accountService.EnsureUser(Context(c), sender.ID, username)
	if err != nil {
		return replyError(c, err, "register")
	}

	if created {
		return c.Reply(fmt.Sprintf(
			"🎉 Welcome %s!\n\n"+
				"Every day there is one secret word. Guess it before you run out of lives.\n\n"+
				"%s",
			username, helpText,
		))
	}
	return c.Reply(fmt.Sprintf("👋 Welcome back %s!\n\n%s", username, helpText))
}
