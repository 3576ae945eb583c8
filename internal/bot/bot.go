// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/config"
	"daily-word-bot/internal/handler"
	"daily-word-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot *tele.Bot
	cfg *config.Config

	// Handlers
	accountHandler *handler.AccountHandler
	gameHandler    *handler.GameHandler
	rankingHandler *handler.RankingHandler
	adminHandler   *handler.AdminHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config         *config.Config
	AccountService *service.AccountService
	SessionService *service.SessionService
	CatalogService *service.HintCatalogService
	RankingService *service.RankingService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	timeout := deps.Config.Bot.PollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	teleBot, err := tele.NewBot(tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: timeout},
		OnError: func(err error, c tele.Context) {
			log.Ctx(handler.Context(c)).Error().Err(err).Msg("Unhandled bot error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return newWithBot(teleBot, deps), nil
}

func newWithBot(teleBot *tele.Bot, deps *Dependencies) *Bot {
	b := &Bot{
		bot:            teleBot,
		cfg:            deps.Config,
		accountHandler: handler.NewAccountHandler(deps.AccountService),
		gameHandler:    handler.NewGameHandler(deps.AccountService, deps.SessionService, deps.CatalogService),
		rankingHandler: handler.NewRankingHandler(deps.RankingService),
		adminHandler:   handler.NewAdminHandler(deps.CatalogService),
	}

	b.registerMiddleware()
	b.registerHandlers()
	return b
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(LoggingMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
}

// registerHandlers registers all command handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.accountHandler.HandleStart)

	b.bot.Handle("/play", b.gameHandler.HandlePlay)
	b.bot.Handle("/guess", b.gameHandler.HandleGuess)
	b.bot.Handle("/hint", b.gameHandler.HandleHint)
	b.bot.Handle("/hints", b.gameHandler.HandleHints)

	b.bot.Handle("/today_top", b.rankingHandler.HandleTodayTop)

	adminGroup := b.bot.Group()
	adminGroup.Use(AdminMiddleware(b.cfg))
	adminGroup.Handle("/hinttypes", b.adminHandler.HandleList)
	adminGroup.Handle("/hinttype_add", b.adminHandler.HandleAdd)
	adminGroup.Handle("/hinttype_del", b.adminHandler.HandleDelete)
	adminGroup.Handle("/hinttype_restore", b.adminHandler.HandleRestore)
	adminGroup.Handle("/hinttype_edit", b.adminHandler.HandleEdit)
}

// Start starts the bot polling. It blocks until Stop is called.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
