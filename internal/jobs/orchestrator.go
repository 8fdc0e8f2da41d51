// Package jobs drives site-build jobs through their lifecycle:
// pending -> in_progress -> complete|error.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siteforge/siteforge/internal/artifact"
	"github.com/siteforge/siteforge/internal/builder"
	"github.com/siteforge/siteforge/internal/model"
	"github.com/siteforge/siteforge/internal/store"
)

// Progress values reported while a job runs. A small nonzero value
// signals "accepted and started" to polling clients.
const (
	progressStarted = 10
	progressDone    = 100
)

// Orchestrator accepts validated submissions, persists a job record
// and runs the build in a background goroutine. One goroutine per
// accepted submission; no queueing, no retries, no cancellation.
type Orchestrator struct {
	store     store.JobStore
	builder   builder.Builder
	artifacts *artifact.Store
	logger    *slog.Logger
}

func NewOrchestrator(s store.JobStore, b builder.Builder, a *artifact.Store, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:     s,
		builder:   b,
		artifacts: a,
		logger:    logger,
	}
}

// Submit creates a pending job for the submission and returns its id
// immediately. The build runs out-of-band; its outcome is observable
// only through the job record.
func (o *Orchestrator) Submit(ctx context.Context, sub *model.FormSubmission) (string, error) {
	job, err := o.store.Create(ctx, sub.Fields())
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	go o.run(job.ID, sub)
	return job.ID, nil
}

// run owns all writes to the job record for its lifetime. Any failure,
// including a panicking builder, forces the job into the error state so
// it can never be left stuck in_progress.
func (o *Orchestrator) run(jobID string, sub *model.FormSubmission) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("build panicked", "jobId", jobID, "panic", r)
			o.fail(ctx, jobID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	started := progressStarted
	if err := o.store.Update(ctx, jobID, store.JobUpdate{
		Status:   model.StatusInProgress,
		Progress: &started,
	}); err != nil {
		o.logger.Error("failed to mark job in progress", "jobId", jobID, "error", err)
		o.fail(ctx, jobID, fmt.Sprintf("storage error: %v", err))
		return
	}

	result, err := o.builder.Build(ctx, sub)
	if err != nil {
		o.logger.Warn("build failed", "jobId", jobID, "error", err)
		o.fail(ctx, jobID, err.Error())
		return
	}

	pdfURL, err := o.artifacts.SavePDF(jobID, result.PDFBytes)
	if err != nil {
		o.logger.Error("failed to persist artifact", "jobId", jobID, "error", err)
		o.fail(ctx, jobID, err.Error())
		return
	}

	done := progressDone
	if err := o.store.Update(ctx, jobID, store.JobUpdate{
		Status:         model.StatusComplete,
		Progress:       &done,
		SiteURLs:       result.SiteURLs,
		PDFURL:         pdfURL,
		CloudResources: result.CloudResources,
	}); err != nil {
		o.logger.Error("failed to complete job", "jobId", jobID, "error", err)
		return
	}
	o.logger.Info("job complete", "jobId", jobID, "urls", len(result.SiteURLs))
}

func (o *Orchestrator) fail(ctx context.Context, jobID, msg string) {
	done := progressDone
	err := o.store.Update(ctx, jobID, store.JobUpdate{
		Status:   model.StatusError,
		Progress: &done,
		Error:    msg,
	})
	if err != nil {
		// Nothing left to record the failure into; the job stays stuck.
		o.logger.Error("failed to record job error", "jobId", jobID, "error", err)
	}
}
