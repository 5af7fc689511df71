package domain

import (
	"sort"
	"time"
)

// IngestionStatus enumerates the states of a store ingestion.
type IngestionStatus string

const (
	IngestionInProgress IngestionStatus = "in_progress"
	IngestionCompleted  IngestionStatus = "completed"
	IngestionCanceled   IngestionStatus = "canceled"
)

// StepStatus enumerates the states of a single ingestion step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	StepCanceled   StepStatus = "canceled"
)

// Step is the observable state of one ingestion phase.
type Step struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

// IngestionAsset is a candidate asset discovered during an ingestion.
type IngestionAsset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
	Selected bool   `json:"selected"`
}

// AssetGroup buckets candidate assets of one category.
type AssetGroup struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Assets []IngestionAsset `json:"assets"`
}

// Ingestion is the simulated import of a store's logo, menu, products and photos.
//
// SelectedAssetIDs and the Selected flag of every asset in AssetGroups describe
// the same selection and are kept in sync by the selection code.
type Ingestion struct {
	ID                        string
	StoreID                   string
	Status                    IngestionStatus
	Progress                  int
	Steps                     []Step
	EstimatedSecondsRemaining int
	StartedAt                 time.Time
	SelectedAssetIDs          map[string]struct{}
	AssetGroups               []AssetGroup
}

// SelectedIDs returns the selected asset ids in a stable order.
func (i *Ingestion) SelectedIDs() []string {
	ids := make([]string, 0, len(i.SelectedAssetIDs))
	for id := range i.SelectedAssetIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy so callers never alias a stored record.
func (i *Ingestion) Clone() *Ingestion {
	if i == nil {
		return nil
	}
	out := *i
	out.Steps = append([]Step(nil), i.Steps...)
	out.SelectedAssetIDs = make(map[string]struct{}, len(i.SelectedAssetIDs))
	for id := range i.SelectedAssetIDs {
		out.SelectedAssetIDs[id] = struct{}{}
	}
	out.AssetGroups = make([]AssetGroup, len(i.AssetGroups))
	for idx, g := range i.AssetGroups {
		g.Assets = append([]IngestionAsset(nil), g.Assets...)
		out.AssetGroups[idx] = g
	}
	return &out
}
