// Package simulation derives the state of onboarding ingestions and
// collateral generation jobs from elapsed wall-clock time. Nothing runs in the
// background: every read recomputes the stored record against the clock.
package simulation

import (
	"time"

	"myshop/internal/domain"
)

// StepDefinition describes one fixed phase of an ingestion.
type StepDefinition struct {
	ID       string
	Label    string
	Duration time.Duration
}

// Schedule is an ordered list of steps shared by all ingestions.
type Schedule []StepDefinition

// IngestionSchedule is the step sequence every ingestion runs through. The
// cumulative total is 50 seconds.
var IngestionSchedule = Schedule{
	{ID: "collect_basics", Label: "Collecting basic information", Duration: 8 * time.Second},
	{ID: "find_logo", Label: "Finding store logo", Duration: 10 * time.Second},
	{ID: "catalog_products", Label: "Cataloging products", Duration: 12 * time.Second},
	{ID: "gather_photos", Label: "Gathering photos", Duration: 20 * time.Second},
}

// Cutoffs returns the elapsed time at which each step completes.
func (s Schedule) Cutoffs() []time.Duration {
	out := make([]time.Duration, len(s))
	var total time.Duration
	for i, step := range s {
		total += step.Duration
		out[i] = total
	}
	return out
}

// Total is the elapsed time after which the whole schedule is done.
func (s Schedule) Total() time.Duration {
	var total time.Duration
	for _, step := range s {
		total += step.Duration
	}
	return total
}

// NewSteps returns the initial step states: the first step running, the rest
// pending.
func (s Schedule) NewSteps() []domain.Step {
	steps := make([]domain.Step, len(s))
	for i, def := range s {
		status := domain.StepPending
		if i == 0 {
			status = domain.StepInProgress
		}
		steps[i] = domain.Step{ID: def.ID, Label: def.Label, Status: status}
	}
	return steps
}
