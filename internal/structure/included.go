package structure

import (
	"path/filepath"
	"strings"
)

// IncludedSuites matches suite names against glob patterns such as
// "login*" or "parent.child". Matching ignores case, spaces and
// underscores, and an ordering prefix like "01__" in the name.
type IncludedSuites struct {
	patterns []string
}

// NewIncludedSuites normalizes patterns. Only the last part of a dotted
// pattern is used, since files and directories are matched by their own
// name.
func NewIncludedSuites(patterns []string) *IncludedSuites {
	is := &IncludedSuites{}
	for _, p := range patterns {
		if i := strings.LastIndex(p, "."); i >= 0 {
			p = p[i+1:]
		}
		if p = normalize(p); p != "" {
			is.patterns = append(is.patterns, p)
		}
	}
	return is
}

// Empty reports whether there are no patterns, meaning everything is included.
func (is *IncludedSuites) Empty() bool {
	return is == nil || len(is.patterns) == 0
}

// MatchFile reports whether a file name, without its extension, matches.
func (is *IncludedSuites) MatchFile(name string) bool {
	return is.match(strings.TrimSuffix(name, filepath.Ext(name)))
}

// MatchDirectory reports whether a directory name matches.
func (is *IncludedSuites) MatchDirectory(name string) bool {
	return !is.Empty() && is.match(name)
}

func (is *IncludedSuites) match(name string) bool {
	if is.Empty() {
		return true
	}
	candidates := []string{normalize(name)}
	if i := strings.Index(name, "__"); i >= 0 {
		candidates = append(candidates, normalize(name[i+2:]))
	}
	for _, p := range is.patterns {
		for _, c := range candidates {
			if ok, _ := filepath.Match(p, c); ok {
				return true
			}
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "").Replace(s)
}
