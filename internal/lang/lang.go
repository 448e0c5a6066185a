// Package lang maps localized section and setting names onto the canonical
// English keys understood by the suite parsers.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Section keys used by suite documents.
const (
	Settings  = "settings"
	Variables = "variables"
	Tests     = "tests"
	Tasks     = "tasks"
	Keywords  = "keywords"
)

var translations = map[string]map[string]string{
	"de": {
		"einstellungen":   Settings,
		"variablen":       Variables,
		"testfälle":       Tests,
		"aufgaben":        Tasks,
		"schlüsselwörter": Keywords,
	},
	"fi": {
		"asetukset":  Settings,
		"muuttujat":  Variables,
		"testit":     Tests,
		"tehtävät":   Tasks,
		"avainsanat": Keywords,
	},
	"fr": {
		"paramètres": Settings,
		"variables":  Variables,
		"tests":      Tests,
		"tâches":     Tasks,
		"mots-clés":  Keywords,
	},
}

// Languages is the set of extra languages accepted while parsing.
// The zero value accepts English only.
type Languages struct {
	codes   []string
	aliases map[string]string
}

// New resolves BCP 47 language codes such as "de", "fi-FI" or "fr".
func New(codes ...string) (*Languages, error) {
	l := &Languages{aliases: make(map[string]string)}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", code, err)
		}
		base, _ := tag.Base()
		table, ok := translations[base.String()]
		if !ok {
			return nil, fmt.Errorf("unsupported language %q", code)
		}
		l.codes = append(l.codes, base.String())
		for localized, canonical := range table {
			l.aliases[localized] = canonical
		}
	}
	return l, nil
}

// Codes returns the base language codes that were enabled.
func (l *Languages) Codes() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.codes...)
}

// Canonical returns the English key for a possibly localized section name.
// Unknown names are returned lower-cased and otherwise unchanged.
func (l *Languages) Canonical(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if l != nil {
		if canonical, ok := l.aliases[key]; ok {
			return canonical
		}
	}
	return key
}
