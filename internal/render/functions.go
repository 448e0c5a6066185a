package render

import (
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/frherrer/docsuite/internal/domain"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorTests   = lipgloss.Color("#10B981")
	colorTasks   = lipgloss.Color("#F59E0B")
)

var (
	suiteStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	testsStyle = lipgloss.NewStyle().Foreground(colorTests)
	tasksStyle = lipgloss.NewStyle().Foreground(colorTasks)
)

// FuncMap returns the functions available in templates.
func FuncMap(color bool) template.FuncMap {
	style := func(s lipgloss.Style) func(string) string {
		if !color {
			return func(text string) string { return text }
		}
		return func(text string) string { return s.Render(text) }
	}
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"pad": func(depth int) string {
			return strings.Repeat("  ", depth)
		},
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"join": strings.Join,
		"indent": func(spaces int, s string) string {
			pad := strings.Repeat(" ", spaces)
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				if line != "" {
					lines[i] = pad + line
				}
			}
			return strings.Join(lines, "\n")
		},
		"suite": style(suiteStyle),
		"label": style(labelStyle),
		"muted": style(mutedStyle),
		"mode": func(m domain.ExecutionMode) string {
			text := "[" + m.String() + "]"
			switch m {
			case domain.ModeTests:
				return style(testsStyle)(text)
			case domain.ModeTasks:
				return style(tasksStyle)(text)
			}
			return style(mutedStyle)(text)
		},
	}
}
