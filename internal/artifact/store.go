// Package artifact stores generated PDF artifacts on the filesystem
// and exposes them at a stable path derived from the job id.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

const publicBase = "/jobs"

// Store writes PDF artifacts into a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SavePDF persists the PDF bytes for a job and returns the public URL
// the artifact is served from.
func (s *Store) SavePDF(jobID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}
	path := filepath.Join(s.dir, jobID+".pdf")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write pdf artifact: %w", err)
	}
	return publicBase + "/" + jobID + ".pdf", nil
}

// FilePath returns the on-disk location for an artifact filename.
func (s *Store) FilePath(filename string) string {
	return filepath.Join(s.dir, filename)
}
