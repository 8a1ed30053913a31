// Package manifest records what a documentation run produced, so later
// commands can find the generated document and report on it without
// rescanning the package.
package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

const (
	CurrentVersion = "1.0.0"
	ManifestFile   = ".doksit-manifest.json"
)

type Manifest struct {
	Version   string       `json:"version"`
	Generated time.Time    `json:"generated"`
	Title     string       `json:"title"`
	Package   string       `json:"package"`
	Output    string       `json:"output"`
	Modules   []ModuleInfo `json:"modules"`
	Warnings  int          `json:"warnings"`
}

type ModuleInfo struct {
	Path      string   `json:"path"`
	Module    string   `json:"module"`
	Classes   int      `json:"classes"`
	Functions int      `json:"functions"`
	Warnings  []string `json:"warnings,omitempty"`
}

func New(title, pkg, output string) *Manifest {
	return &Manifest{
		Version:   CurrentVersion,
		Generated: time.Now().UTC(),
		Title:     title,
		Package:   pkg,
		Output:    output,
	}
}

// Load reads the manifest next to the generated document. A missing
// manifest returns nil without error.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, oops.
			Code("MANIFEST_ERROR").
			With("path", path).
			Wrapf(err, "reading manifest")
	}

	m := &Manifest{}
	if unmarshalErr := json.Unmarshal(data, m); unmarshalErr != nil {
		return nil, oops.
			Code("MANIFEST_ERROR").
			With("path", path).
			Wrapf(unmarshalErr, "decoding manifest")
	}

	return m, nil
}

// Save writes the manifest into dir atomically: write to a temp file in
// the same directory, then rename over the target.
func (m *Manifest) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return oops.Wrapf(err, "encoding manifest")
	}

	tmp, err := os.CreateTemp(dir, ManifestFile+".tmp-*")
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("dir", dir).
			Wrapf(err, "creating temporary manifest")
	}

	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(append(data, '\n')); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return oops.
			Code("WRITE_FAILED").
			With("path", tmpPath).
			Wrapf(writeErr, "writing manifest")
	}

	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return oops.Wrapf(closeErr, "closing manifest")
	}

	target := filepath.Join(dir, ManifestFile)
	if renameErr := os.Rename(tmpPath, target); renameErr != nil {
		_ = os.Remove(tmpPath)

		return oops.
			Code("WRITE_FAILED").
			With("path", target).
			Wrapf(renameErr, "replacing manifest")
	}

	return nil
}
