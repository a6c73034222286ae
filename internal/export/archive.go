package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/txforge/txforge/internal/errdefs"
)

// zipEpoch is the fixed modification time stamped into archive entries so
// that two exports of the same project produce byte-identical archives.
var zipEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Package serializes the artifact into a zip archive. Entries are written in
// sorted path order with a fixed timestamp.
func Package(a *Artifact) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, p := range a.Paths() {
		hdr := &zip.FileHeader{Name: p, Method: zip.Deflate, Modified: zipEpoch}
		f, err := w.CreateHeader(hdr)
		if err != nil {
			return nil, errdefs.ExportFailed("packaging", err)
		}
		if _, err := f.Write(a.Files[p]); err != nil {
			return nil, errdefs.ExportFailed("packaging", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, errdefs.ExportFailed("packaging", err)
	}
	return buf.Bytes(), nil
}

// WriteDir writes the artifact's files under dir, creating directories as
// needed.
func WriteDir(a *Artifact, dir string) error {
	for _, p := range a.Paths() {
		target := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return errdefs.ExportFailed("write", fmt.Errorf("create directory for %s: %w", p, err))
		}
		if err := os.WriteFile(target, a.Files[p], 0o600); err != nil {
			return errdefs.ExportFailed("write", fmt.Errorf("write %s: %w", p, err))
		}
	}
	return nil
}
