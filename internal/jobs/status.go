package jobs

import (
	"context"

	"github.com/siteforge/siteforge/internal/model"
	"github.com/siteforge/siteforge/internal/store"
)

// StatusView is the client-facing projection of a job record. URLs and
// the artifact reference appear only once the job is complete.
type StatusView struct {
	JobID    string          `json:"jobId"`
	Status   model.JobStatus `json:"status"`
	Progress int             `json:"progress"`
	Message  string          `json:"message"`
	URLs     []string        `json:"urls,omitempty"`
	PDFURL   string          `json:"pdfUrl,omitempty"`
}

// StatusService is the read-only lookup used by polling clients.
type StatusService struct {
	store store.JobStore
}

func NewStatusService(s store.JobStore) *StatusService {
	return &StatusService{store: s}
}

// Get projects the stored job into a status view. Returns
// store.ErrNotFound for unknown ids.
func (s *StatusService) Get(ctx context.Context, jobID string) (*StatusView, error) {
	job, err := s.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		JobID:    job.ID,
		Status:   job.Status,
		Progress: job.Progress,
		Message:  job.Error,
	}
	if job.Status == model.StatusComplete {
		view.URLs = job.SiteURLs
		view.PDFURL = job.PDFURL
	}
	return view, nil
}
