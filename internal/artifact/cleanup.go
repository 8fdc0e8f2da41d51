package artifact

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CleanOld removes PDF artifacts older than the retention window and
// returns how many were deleted.
func CleanOld(dir string, retention time.Duration, logger *slog.Logger) (int, error) {
	pattern := filepath.Join(dir, "*.pdf")
	files, err := filepath.Glob(pattern)
	if err != nil {
		logger.Error("artifact cleanup failed", "error", err)
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	cleaned := 0

	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(f); err != nil {
				logger.Warn("failed to remove artifact", "file", f, "error", err)
			} else {
				cleaned++
			}
		}
	}

	if cleaned > 0 {
		logger.Info("cleaned up old artifacts", "count", cleaned)
	}
	return cleaned, nil
}
