package handler

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/game"
	"daily-word-bot/internal/service"
)

// GameHandler handles the word game commands.
type GameHandler struct {
	accountService *service.AccountService
	sessionService *service.SessionService
	catalogService *service.HintCatalogService
	rules          game.Rules
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(
	accountService *service.AccountService,
	sessionService *service.SessionService,
	catalogService *service.HintCatalogService,
) *GameHandler {
	return &GameHandler{
		accountService: accountService,
		sessionService: sessionService,
		catalogService: catalogService,
		rules:          sessionService.Rules(),
	}
}

// ensureUser registers the sender on first contact so that /play works
// without /start.
func (h *GameHandler) ensureUser(c tele.Context) (int64, error) {
	sender := c.Sender()
	_, _, err := h.accountService.EnsureUser(Context(c), sender.ID, displayName(sender))
	return sender.ID, err
}

// HandlePlay handles the /play command.
// Opens today's session on first use and shows the board.
func (h *GameHandler) HandlePlay(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	userID, err := h.ensureUser(c)
	if err != nil {
		return replyError(c, err, "register")
	}

	view, err := h.sessionService.GetOrCreateSession(Context(c), userID)
	if err != nil {
		return replyError(c, err, "open today's game")
	}

	board := RenderSession(view, h.rules)
	if view.Created {
		board = "🆕 New game started!\n" + board
	}
	return c.Reply(board)
}

// HandleGuess handles the /guess command.
// Format: /guess <word>
func (h *GameHandler) HandleGuess(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	args := c.Args()
	if len(args) != 1 {
		return c.Reply("❌ Usage: /guess <word>")
	}

	res, err := h.sessionService.SubmitGuess(Context(c), c.Sender().ID, args[0])
	if err != nil {
		return replyError(c, err, "submit the guess")
	}
	return c.Reply(RenderGuessResult(res, h.rules.MaxGuessCount))
}

// HandleHint handles the /hint command.
// Format: /hint <type>
func (h *GameHandler) HandleHint(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	args := c.Args()
	if len(args) != 1 {
		return h.HandleHints(c)
	}

	res, err := h.sessionService.UseHint(Context(c), c.Sender().ID, args[0])
	if err != nil {
		return replyError(c, err, "use the hint")
	}
	return c.Reply(RenderHint(res))
}

// HandleHints handles the /hints command.
// Lists the hint types a player can request.
func (h *GameHandler) HandleHints(c tele.Context) error {
	types, err := h.catalogService.List(Context(c), false)
	if err != nil {
		return replyError(c, err, "list hints")
	}
	if len(types) == 0 {
		return c.Reply("📭 No hints are available")
	}

	var b strings.Builder
	b.WriteString("💡 Available hints (each costs a life):\n")
	for _, ht := range types {
		b.WriteString("/hint " + strings.ToLower(ht.Code) + " - " + ht.DisplayName + "\n")
	}
	return c.Reply(strings.TrimRight(b.String(), "\n"))
}
