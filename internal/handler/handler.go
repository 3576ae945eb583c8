// Package handler provides Telegram bot command handlers.
package handler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/game"
)

const contextKey = "request_ctx"

// SetContext attaches the request context of an update to c.
func SetContext(c tele.Context, ctx context.Context) {
	c.Set(contextKey, ctx)
}

// Context returns the request context attached by SetContext, or a
// background context.
func Context(c tele.Context) context.Context {
	if ctx, ok := c.Get(contextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

// displayName returns the Telegram username of u, or the first name.
func displayName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// replyError answers with the message of a game error, or a generic apology
// for anything else.
func replyError(c tele.Context, err error, action string) error {
	if _, ok := game.KindOf(err); ok {
		return c.Reply("❌ " + err.Error())
	}
	log.Ctx(Context(c)).Error().Err(err).Str("action", action).Msg("Handler failed")
	return c.Reply(fmt.Sprintf("❌ Failed to %s, please try again later", action))
}
