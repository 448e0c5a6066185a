package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frherrer/docsuite/internal/domain"
)

// NormalizePaths cleans the given paths and makes them absolute without
// resolving symlinks. All missing paths are reported in one error.
func NormalizePaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, domain.Errorf(domain.KindConfig, "One or more source paths required.")
	}
	normalized := make([]string, 0, len(paths))
	var missing []string
	for _, p := range paths {
		abs, err := filepath.Abs(filepath.Clean(p))
		if err != nil {
			return nil, domain.NewError(domain.KindPath, p, 0, "invalid path", err)
		}
		if _, err := os.Stat(abs); err != nil {
			missing = append(missing, abs)
		}
		normalized = append(normalized, abs)
	}
	if len(missing) > 0 {
		return nil, domain.Errorf(domain.KindPath,
			"Parsing %s failed: File or directory to execute does not exist.", quoteList(missing))
	}
	return normalized, nil
}

// quoteList renders items as 'a', 'b' and 'c'.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("'%s'", item)
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
