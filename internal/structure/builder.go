package structure

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docsuite/internal/domain"
)

const initFileName = "__init__"

// Builder discovers suite files and directories.
type Builder struct {
	extensions map[string]bool
	included   *IncludedSuites
	log        *logrus.Logger
}

// NewBuilder creates a Builder accepting files with the given extensions.
// When includedSuites is non-empty, only files whose suite name matches one
// of the patterns are included, along with whole directories that match.
func NewBuilder(extensions, includedSuites []string, log *logrus.Logger) *Builder {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(strings.TrimLeft(ext, "."))] = true
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{
		extensions: exts,
		included:   NewIncludedSuites(includedSuites),
		log:        log,
	}
}

// Build returns the structure for the given paths. A single path yields its
// File or Directory; several paths yield a multi-source Directory whose
// children follow the order of paths. Explicitly given files are always
// included regardless of their extension.
func (b *Builder) Build(paths ...string) (Node, error) {
	if len(paths) == 1 {
		return b.build(paths[0])
	}
	root := &Directory{IsMultiSource: true}
	for _, path := range paths {
		child, err := b.build(path)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return root, nil
}

func (b *Builder) build(path string) (Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewError(domain.KindPath, path, 0, "File or directory to execute does not exist.", nil)
	}
	if !info.IsDir() {
		return &File{Source: path, Extension: extension(path)}, nil
	}
	return b.directory(path, b.included.Empty())
}

// directory lists path and its subdirectories. includeAll is set when the
// directory itself matched the included suites.
func (b *Builder) directory(path string, includeAll bool) (*Directory, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion(domain.KindPath, path, 0,
			"failed to read directory",
			"check that the directory exists and has read permissions",
			err)
	}
	slices.SortFunc(entries, func(a, c os.DirEntry) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(c.Name()))
	})

	dir := &Directory{Source: path}
	for _, entry := range entries {
		name := entry.Name()
		child := filepath.Join(path, name)
		info, err := os.Stat(child)
		if err != nil {
			b.log.Warnf("Ignoring '%s': %v", child, err)
			continue
		}

		if !info.IsDir() && b.isInitFile(name) {
			if dir.InitFile != "" {
				b.log.Errorf("Ignoring second test suite init file '%s'.", child)
				continue
			}
			dir.InitFile = child
			continue
		}
		if isIgnored(name) {
			b.log.Debugf("Ignoring file or directory '%s'.", child)
			continue
		}

		if info.IsDir() {
			sub, err := b.directory(child, includeAll || b.included.MatchDirectory(name))
			if err != nil {
				return nil, err
			}
			dir.Children = append(dir.Children, sub)
			continue
		}
		if !b.extensions[extension(name)] {
			continue
		}
		if !includeAll && !b.included.MatchFile(name) {
			continue
		}
		dir.Children = append(dir.Children, &File{Source: child, Extension: extension(name)})
	}
	return dir, nil
}

func (b *Builder) isInitFile(name string) bool {
	ext := filepath.Ext(name)
	return strings.EqualFold(strings.TrimSuffix(name, ext), initFileName) && b.extensions[extension(name)]
}

func isIgnored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "CVS"
}
