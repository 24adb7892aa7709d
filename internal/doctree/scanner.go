// Package doctree finds the Markdown documents under an indexing root.
package doctree

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile represents a markdown file found during a scan.
type ScannedFile struct {
	RelPath string // Relative path from the root with forward slashes (e.g., "guide/install.md")
	Module  string // First path segment, empty for root-level files
	AbsPath string // Absolute file path
}

// IsMarkdown reports whether path names a Markdown document.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// IsHidden reports whether a file or directory name is hidden.
func IsHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// Scan walks root and returns every markdown file in it, sorted by relative
// path. Hidden directories (".git", ".obsidian", ...) are skipped.
func Scan(ctx context.Context, root string) ([]ScannedFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var files []ScannedFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkdown(path) {
			return nil
		}

		file, err := NewScannedFile(absRoot, path)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// NewScannedFile describes the file at abs path relative to absRoot.
func NewScannedFile(absRoot, path string) (ScannedFile, error) {
	relPath, err := filepath.Rel(absRoot, path)
	if err != nil {
		return ScannedFile{}, fmt.Errorf("failed to compute relative path for %s: %w", path, err)
	}
	relPath = filepath.ToSlash(relPath)

	module := ""
	if i := strings.Index(relPath, "/"); i >= 0 {
		module = relPath[:i]
	}

	return ScannedFile{
		RelPath: relPath,
		Module:  module,
		AbsPath: path,
	}, nil
}
