package domain

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// NameFromSource derives a suite name from a file or directory path.
// The extension is removed when stripExtension is set, an ordering prefix
// such as "01__" is dropped, underscores become spaces and all-lowercase
// names are title-cased.
func NameFromSource(source string, stripExtension bool) string {
	if source == "" {
		return ""
	}
	name := filepath.Base(source)
	if stripExtension {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if _, rest, found := strings.Cut(name, "__"); found && rest != "" {
		name = rest
	}
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	if name == strings.ToLower(name) && name != strings.ToUpper(name) {
		return titleCaser.String(name)
	}
	return name
}
