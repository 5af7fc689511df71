package simulation

import (
	"time"

	"myshop/internal/domain"
)

const (
	// InitialProgress is the progress reported by a freshly started ingestion.
	InitialProgress = 5
	// ProgressCeiling caps progress until the schedule has fully elapsed.
	ProgressCeiling = 95
	// MinEstimatedSeconds is the lowest ETA shown while still running.
	MinEstimatedSeconds = 10
	// CanceledProgressCap bounds the progress of a canceled ingestion.
	CanceledProgressCap = 80
)

// IngestionEngine advances ingestion records along a Schedule.
type IngestionEngine struct {
	schedule Schedule
	cutoffs  []time.Duration
	total    time.Duration
}

// NewIngestionEngine builds an engine for the given schedule.
func NewIngestionEngine(schedule Schedule) *IngestionEngine {
	return &IngestionEngine{
		schedule: schedule,
		cutoffs:  schedule.Cutoffs(),
		total:    schedule.Total(),
	}
}

// Schedule returns the schedule the engine runs.
func (e *IngestionEngine) Schedule() Schedule { return e.schedule }

// Recompute derives step statuses, progress and ETA of rec at now. Records
// that are no longer in progress are left untouched.
func (e *IngestionEngine) Recompute(rec *domain.Ingestion, now time.Time) {
	if rec == nil || rec.Status != domain.IngestionInProgress {
		return
	}
	elapsed := now.Sub(rec.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	for i, cutoff := range e.cutoffs {
		if i >= len(rec.Steps) {
			break
		}
		if elapsed >= cutoff {
			rec.Steps[i].Status = domain.StepCompleted
			continue
		}
		if rec.Steps[i].Status == domain.StepPending {
			rec.Steps[i].Status = domain.StepInProgress
		}
		break
	}

	if elapsed >= e.total {
		complete(rec)
		return
	}

	progress := int(int64(elapsed) * 100 / int64(e.total))
	if progress > ProgressCeiling {
		progress = ProgressCeiling
	}
	if progress > rec.Progress {
		rec.Progress = progress
	}

	remaining := e.total - elapsed
	eta := int((remaining + time.Second - 1) / time.Second)
	if eta < MinEstimatedSeconds {
		eta = MinEstimatedSeconds
	}
	rec.EstimatedSecondsRemaining = eta
}

// Cancel freezes a running ingestion. It reports false when rec had already
// left the in-progress state, in which case nothing changes.
func (e *IngestionEngine) Cancel(rec *domain.Ingestion) bool {
	if rec == nil || rec.Status != domain.IngestionInProgress {
		return false
	}
	rec.Status = domain.IngestionCanceled
	rec.EstimatedSecondsRemaining = 0
	if rec.Progress > CanceledProgressCap {
		rec.Progress = CanceledProgressCap
	}
	for i := range rec.Steps {
		if rec.Steps[i].Status == domain.StepInProgress {
			rec.Steps[i].Status = domain.StepCanceled
		}
	}
	return true
}

func complete(rec *domain.Ingestion) {
	rec.Status = domain.IngestionCompleted
	rec.Progress = 100
	rec.EstimatedSecondsRemaining = 0
	for i := range rec.Steps {
		rec.Steps[i].Status = domain.StepCompleted
	}
}
