// Package structure walks the file system and describes the suite
// structure that the builder turns into a suite tree.
package structure

import (
	"path/filepath"
	"strings"
)

// Visitor receives the nodes of a structure depth-first.
type Visitor interface {
	VisitFile(f *File) error
	StartDirectory(d *Directory) error
	EndDirectory(d *Directory) error
}

// Node is a File or a Directory.
type Node interface {
	// Visit drives v over the node and its children. The first error
	// returned by v aborts the walk.
	Visit(v Visitor) error
}

// File is a suite file.
type File struct {
	Source string
	// Extension is lower-cased and has no leading dot.
	Extension string
}

func (f *File) Visit(v Visitor) error { return v.VisitFile(f) }

// Directory is a suite directory, or the synthetic parent of several
// input paths when IsMultiSource is set. A multi-source directory has no
// source.
type Directory struct {
	Source        string
	InitFile      string
	Children      []Node
	IsMultiSource bool
}

// InitExtension returns the normalized extension of the init file, or ""
// when the directory has none.
func (d *Directory) InitExtension() string {
	if d.InitFile == "" {
		return ""
	}
	return extension(d.InitFile)
}

func (d *Directory) Visit(v Visitor) error {
	if err := v.StartDirectory(d); err != nil {
		return err
	}
	for _, child := range d.Children {
		if err := child.Visit(v); err != nil {
			return err
		}
	}
	return v.EndDirectory(d)
}

func extension(path string) string {
	return strings.ToLower(strings.TrimLeft(filepath.Ext(path), "."))
}
