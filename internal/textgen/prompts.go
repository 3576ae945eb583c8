package textgen

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"lower": strings.ToLower}).
	ParseFS(promptFS, "prompts/*.tmpl"))

// Prompt template names.
const (
	promptSystem = "system.tmpl"
	promptWord   = "word.tmpl"
	promptHint   = "hint.tmpl"
	promptReply  = "reply.tmpl"
)

type wordPrompt struct {
	MaxLength int
}

type hintPrompt struct {
	Word     string
	HintType string
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
