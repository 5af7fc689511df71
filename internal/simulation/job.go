package simulation

import (
	"fmt"
	"time"

	"myshop/internal/domain"
)

const (
	// QueuedWindow is how long a job stays queued after creation.
	QueuedWindow = 2 * time.Second
	// RunningWindow is the elapsed time after which a job succeeds.
	RunningWindow = 10 * time.Second

	resultURLBase = "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=1200"

	errJobNotFinished = "Job is not finished yet."
)

// AssetDraft describes the asset a saved job turns into.
type AssetDraft struct {
	Name     string
	Category string
	URL      string
}

// JobEngine moves generation jobs through queued, running and succeeded. The
// same thresholds apply to every job kind.
type JobEngine struct{}

// NewJobEngine returns a JobEngine.
func NewJobEngine() *JobEngine { return &JobEngine{} }

// Recompute derives the status of job at now. Terminal jobs are left untouched.
func (e *JobEngine) Recompute(job *domain.Job, now time.Time) {
	if job == nil {
		return
	}
	switch job.Status {
	case domain.JobStatusSucceeded, domain.JobStatusFailed:
		return
	case domain.JobStatusQueued, domain.JobStatusRunning:
	default:
		job.Status = domain.JobStatusQueued
	}

	elapsed := now.Sub(job.CreatedAt)
	switch {
	case elapsed > RunningWindow:
		job.Status = domain.JobStatusSucceeded
		url := ResultURL(job.ID)
		job.ResultURL = &url
	case elapsed > QueuedWindow:
		job.Status = domain.JobStatusRunning
	default:
		job.Status = domain.JobStatusQueued
	}
}

// Save validates that job has finished and returns the asset it produces. An
// unfinished job is marked failed and domain.ErrNotReady is returned; its
// ResultURL is left as is.
func (e *JobEngine) Save(job *domain.Job) (AssetDraft, error) {
	if job.Status != domain.JobStatusSucceeded {
		job.Status = domain.JobStatusFailed
		msg := errJobNotFinished
		job.Error = &msg
		return AssetDraft{}, fmt.Errorf("save %s job %s: %w", job.Kind, job.ID, domain.ErrNotReady)
	}
	draft := AssetDraft{}
	if job.ResultURL != nil {
		draft.URL = *job.ResultURL
	}
	switch job.Kind {
	case domain.JobKindPoster:
		draft.Name = "Generated Poster"
		if job.Poster != nil && job.Poster.Headline != "" {
			draft.Name = job.Poster.Headline
		}
		draft.Category = "poster"
	case domain.JobKindMenuBoard:
		draft.Name = "Menu Board"
		draft.Category = "menu"
	default:
		return AssetDraft{}, fmt.Errorf("save job %s: %w: %q", job.ID, domain.ErrUnknownJobKind, job.Kind)
	}
	return draft, nil
}

// ResultURL is the deterministic image location of a succeeded job.
func ResultURL(jobID string) string {
	return resultURLBase + "&" + jobID
}
