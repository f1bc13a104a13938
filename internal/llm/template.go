package llm

import (
	"strings"
	"text/template"
)

// MustTemplate parses a prompt template asset. Prompt templates are data,
// versioned alongside the flow that renders them, not business logic.
func MustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(text))
}

// Render executes a prompt template with the given typed context.
func Render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
