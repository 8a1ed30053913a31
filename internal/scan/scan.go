// Package scan discovers Python source files and extracts, per file, every
// documentable entity with its raw docstring and signature metadata. The
// extraction is purely textual: no interpreter, no reflection.
package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"

	"github.com/g5becks/doksit/internal/entity"
)

// Entity pairs one entity's metadata with its raw docstring text.
type Entity struct {
	Meta      *entity.Metadata
	Docstring string
}

// Class is a scanned class with its members in declaration order.
type Class struct {
	Entity  Entity
	Members []Entity
}

// Module is everything scanned from one source file.
type Module struct {
	RelPath   string
	Entity    Entity
	Classes   []Class
	Functions []Entity
}

// Documentable reports whether the module defines anything worth a
// documentation block.
func (m *Module) Documentable() bool {
	return len(m.Classes) > 0 || len(m.Functions) > 0
}

func defaultInclude() []string {
	return []string{"**/*.py"}
}

func ignoredFiles() map[string]bool {
	return map[string]bool{"__init__.py": true, "__main__.py": true}
}

// FindFiles walks the package directory top-down in lexical order and
// returns the relative paths of Python files to document. `__pycache__`
// directories and `__init__.py` / `__main__.py` are always skipped;
// include and exclude glob patterns narrow the rest.
func FindFiles(packageDir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = defaultInclude()
	}

	info, err := os.Stat(packageDir)
	if err != nil || !info.IsDir() {
		return nil, oops.
			Code("PACKAGE_NOT_FOUND").
			With("path", packageDir).
			Hint("Pass an existing package directory or set `package` in doksit.toml").
			Errorf("package directory %q does not exist", packageDir)
	}

	var files []string

	walkErr := filepath.WalkDir(packageDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == "__pycache__" {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") || ignoredFiles()[d.Name()] {
			return nil
		}

		rel := filepath.ToSlash(path)
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, oops.
			Code("PACKAGE_NOT_FOUND").
			With("path", packageDir).
			Wrapf(walkErr, "walking package directory")
	}

	return files, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}

	return false
}

// GuessPackage finds the single top-level directory under dir that looks
// like a Python package (contains `__init__.py`), ignoring `tests`.
func GuessPackage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", oops.Wrapf(err, "reading directory %q", dir)
	}

	var candidates []string

	for _, e := range entries {
		if !e.IsDir() || e.Name() == "tests" || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		marker := filepath.Join(dir, e.Name(), "__init__.py")
		if _, statErr := os.Stat(marker); statErr == nil {
			candidates = append(candidates, e.Name())
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", oops.Wrapf(statErr, "checking %q", marker)
		}
	}

	if len(candidates) != 1 {
		return "", oops.
			Code("PACKAGE_NOT_FOUND").
			With("candidates", candidates).
			Hint("Pass the package directory explicitly: doksit api <package>").
			Errorf("cannot guess the package directory")
	}

	return candidates[0], nil
}

// ScanFile reads and scans one source file.
func ScanFile(relPath string) (*Module, error) {
	content, err := os.ReadFile(relPath)
	if err != nil {
		return nil, oops.
			Code("PACKAGE_NOT_FOUND").
			With("path", relPath).
			Wrapf(err, "reading source file")
	}

	return ScanSource(relPath, string(content))
}

// QualifiedName converts a relative file path into a dotted module path.
func QualifiedName(relPath string) string {
	return strings.ReplaceAll(strings.TrimSuffix(filepath.ToSlash(relPath), ".py"), "/", ".")
}
