// Package builder defines the site-build collaborator invoked by the
// job orchestrator. A build may take seconds to minutes and may fail
// for reasons outside this service's control; failures are terminal
// for the job and are never retried here.
package builder

import (
	"context"

	"github.com/siteforge/siteforge/internal/model"
)

// Result is the output of a successful build.
type Result struct {
	SiteURLs       []string
	PDFBytes       []byte
	CloudResources map[string]any
}

// Builder produces a website plus a PDF of the resulting URLs from a
// validated submission.
type Builder interface {
	Build(ctx context.Context, sub *model.FormSubmission) (*Result, error)
}
