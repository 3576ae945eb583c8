package handler

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"daily-word-bot/internal/service"
)

// AdminHandler handles the hint catalog commands.
type AdminHandler struct {
	catalogService *service.HintCatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalogService *service.HintCatalogService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService}
}

func (h *AdminHandler) logOperation(c tele.Context, op, code string) {
	log.Ctx(Context(c)).Info().
		Int64("admin_id", c.Sender().ID).
		Str("operation", op).
		Str("hint_type", code).
		Msg("Admin operation executed")
}

// HandleList handles the /hinttypes command.
func (h *AdminHandler) HandleList(c tele.Context) error {
	types, err := h.catalogService.List(Context(c), true)
	if err != nil {
		return replyError(c, err, "list hint types")
	}
	return c.Reply(RenderHintTypes(types))
}

// HandleAdd handles the /hinttype_add command.
// Format: /hinttype_add <code> [display name]
func (h *AdminHandler) HandleAdd(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Usage: /hinttype_add <code> [display name]")
	}

	ht, err := h.catalogService.Create(Context(c), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return replyError(c, err, "create the hint type")
	}
	h.logOperation(c, "hinttype_add", ht.Code)
	return c.Reply(fmt.Sprintf("✅ Created hint type %s (%s)", ht.Code, ht.DisplayName))
}

// HandleDelete handles the /hinttype_del command.
// Format: /hinttype_del <code>
func (h *AdminHandler) HandleDelete(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Reply("❌ Usage: /hinttype_del <code>")
	}

	ht, err := h.catalogService.SoftDelete(Context(c), args[0])
	if err != nil {
		return replyError(c, err, "delete the hint type")
	}
	h.logOperation(c, "hinttype_del", ht.Code)
	return c.Reply(fmt.Sprintf("🗑 Deleted hint type %s", ht.Code))
}

// HandleRestore handles the /hinttype_restore command.
// Format: /hinttype_restore <code>
func (h *AdminHandler) HandleRestore(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Reply("❌ Usage: /hinttype_restore <code>")
	}

	ht, err := h.catalogService.Reactivate(Context(c), args[0])
	if err != nil {
		return replyError(c, err, "restore the hint type")
	}
	h.logOperation(c, "hinttype_restore", ht.Code)
	return c.Reply(fmt.Sprintf("♻️ Restored hint type %s", ht.Code))
}

// HandleEdit handles the /hinttype_edit command.
// Format: /hinttype_edit <code> <new code|-> [display name]
func (h *AdminHandler) HandleEdit(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Reply("❌ Usage: /hinttype_edit <code> <new code|-> [display name]")
	}

	newCode, newName := parseEditArgs(args[1:])
	if newCode == nil && newName == nil {
		return c.Reply("❌ Nothing to change")
	}

	ht, err := h.catalogService.Update(Context(c), args[0], newCode, newName)
	if err != nil {
		return replyError(c, err, "update the hint type")
	}
	h.logOperation(c, "hinttype_edit", ht.Code)
	return c.Reply(fmt.Sprintf("✏️ Updated hint type %s (%s)", ht.Code, ht.DisplayName))
}

// parseEditArgs reads "<new code|-> [display name...]". A dash keeps the code.
func parseEditArgs(args []string) (newCode, newName *string) {
	if len(args) == 0 {
		return nil, nil
	}
	if args[0] != "-" {
		code := args[0]
		newCode = &code
	}
	if name := strings.Join(args[1:], " "); name != "" {
		newName = &name
	}
	return newCode, newName
}
