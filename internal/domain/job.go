package domain

import "time"

// JobKind enumerates the collateral a generation job produces.
type JobKind string

const (
	JobKindPoster    JobKind = "poster"
	JobKindMenuBoard JobKind = "menu_board"
)

// Valid reports whether k is a supported job kind.
func (k JobKind) Valid() bool {
	return k == JobKindPoster || k == JobKindMenuBoard
}

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// PosterPayload is the request shape of a poster generation.
type PosterPayload struct {
	AssetIDs    []string `json:"assetIds"`
	Headline    string   `json:"headline,omitempty"`
	Subtext     string   `json:"subtext,omitempty"`
	StyleRefIDs []string `json:"styleRefIds"`
	StylePrompt string   `json:"stylePrompt,omitempty"`
}

// MenuItem is a single line on a generated menu board.
type MenuItem struct {
	Name        string `json:"name"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
}

// MenuBoardPayload is the request shape of a menu board generation.
type MenuBoardPayload struct {
	Items           []MenuItem `json:"items"`
	TemplateStyle   string     `json:"templateStyle,omitempty"`
	LogoAssetID     string     `json:"logoAssetId,omitempty"`
	ProductAssetIDs []string   `json:"productAssetIds"`
}

// Job encapsulates the simulated lifecycle of a poster or menu board generation.
// Exactly one of Poster and MenuBoard is set, matching Kind.
type Job struct {
	ID        string
	Kind      JobKind
	Status    JobStatus
	ResultURL *string
	Error     *string
	CreatedAt time.Time
	Poster    *PosterPayload
	MenuBoard *MenuBoardPayload
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	out := *j
	out.ResultURL = cloneString(j.ResultURL)
	out.Error = cloneString(j.Error)
	if j.Poster != nil {
		p := *j.Poster
		p.AssetIDs = append([]string(nil), j.Poster.AssetIDs...)
		p.StyleRefIDs = append([]string(nil), j.Poster.StyleRefIDs...)
		out.Poster = &p
	}
	if j.MenuBoard != nil {
		m := *j.MenuBoard
		m.Items = append([]MenuItem(nil), j.MenuBoard.Items...)
		m.ProductAssetIDs = append([]string(nil), j.MenuBoard.ProductAssetIDs...)
		out.MenuBoard = &m
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
