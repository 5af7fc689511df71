package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"myshop/internal/clock"
	"myshop/internal/domain"
)

const defaultStoreID = "s1"

var jobIDPrefixes = map[domain.JobKind]string{
	domain.JobKindPoster:    "poster_job",
	domain.JobKindMenuBoard: "menu_job",
}

// Options configures a Service.
type Options struct {
	Clock  clock.Clock
	Logger *zerolog.Logger
	Stores domain.StoreRepository
	Assets domain.AssetRepository
	Users  domain.UserStoreLinker
	// DefaultStoreID owns assets saved from generation jobs.
	DefaultStoreID string
	LibraryID      string
	Schedule       Schedule
	NewID          func(prefix string) string
}

// JobPayload carries the kind-specific request of a generation job. Only the
// field matching the job kind is read.
type JobPayload struct {
	Poster    *domain.PosterPayload
	MenuBoard *domain.MenuBoardPayload
}

// Service owns the ingestion and job records and applies the engines to them
// on every call. Each call reads the clock exactly once.
type Service struct {
	clock  clock.Clock
	logger zerolog.Logger
	stores domain.StoreRepository
	assets domain.AssetRepository
	users  domain.UserStoreLinker

	ingestionEngine *IngestionEngine
	jobEngine       *JobEngine

	ingestions *recordStore[domain.Ingestion]
	jobs       map[domain.JobKind]*recordStore[domain.Job]

	defaultStoreID string
	libraryID      string
	newID          func(prefix string) string
}

// NewService validates opts and returns a ready Service.
func NewService(opts Options) (*Service, error) {
	if opts.Stores == nil {
		return nil, errors.New("simulation: store repository is required")
	}
	if opts.Assets == nil {
		return nil, errors.New("simulation: asset repository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("simulation: user store linker is required")
	}
	s := &Service{
		clock:          opts.Clock,
		logger:         zerolog.Nop(),
		stores:         opts.Stores,
		assets:         opts.Assets,
		users:          opts.Users,
		jobEngine:      NewJobEngine(),
		ingestions:     newRecordStore[domain.Ingestion](),
		jobs:           make(map[domain.JobKind]*recordStore[domain.Job], len(jobIDPrefixes)),
		defaultStoreID: opts.DefaultStoreID,
		libraryID:      opts.LibraryID,
		newID:          opts.NewID,
	}
	if s.clock == nil {
		s.clock = clock.System{}
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	schedule := opts.Schedule
	if len(schedule) == 0 {
		schedule = IngestionSchedule
	}
	s.ingestionEngine = NewIngestionEngine(schedule)
	if s.defaultStoreID == "" {
		s.defaultStoreID = defaultStoreID
	}
	if s.libraryID == "" {
		s.libraryID = DefaultLibraryID
	}
	if s.newID == nil {
		s.newID = domain.NewID
	}
	for kind := range jobIDPrefixes {
		s.jobs[kind] = newRecordStore[domain.Job]()
	}
	return s, nil
}

// StartIngestion begins a simulated ingestion of storeID.
func (s *Service) StartIngestion(ctx context.Context, storeID string) (*domain.Ingestion, error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, fmt.Errorf("start ingestion: %w", err)
	}
	now := s.clock.Now()
	schedule := s.ingestionEngine.Schedule()
	rec := &domain.Ingestion{
		ID:                        s.newID("ing"),
		StoreID:                   storeID,
		Status:                    domain.IngestionInProgress,
		Progress:                  InitialProgress,
		Steps:                     schedule.NewSteps(),
		EstimatedSecondsRemaining: int(schedule.Total() / time.Second),
		StartedAt:                 now,
		AssetGroups:               discoveredAssets(storeID),
	}
	ApplySelection(rec, flaggedAssetIDs(rec))
	s.ingestions.put(rec.ID, rec)
	s.logger.Debug().Str("ingestion_id", rec.ID).Str("store_id", storeID).Msg("simulation: ingestion started")
	return rec.Clone(), nil
}

// GetIngestion returns the ingestion recomputed against the current time.
func (s *Service) GetIngestion(ctx context.Context, id string) (*domain.Ingestion, error) {
	now := s.clock.Now()
	var out *domain.Ingestion
	err := s.withIngestion(id, func(rec *domain.Ingestion) error {
		before := rec.Status
		s.ingestionEngine.Recompute(rec, now)
		if rec.Status != before {
			s.logger.Debug().Str("ingestion_id", id).Str("status", string(rec.Status)).Msg("simulation: ingestion finished")
		}
		out = rec.Clone()
		return nil
	})
	return out, err
}

// IngestionAssets returns the candidate asset groups of an ingestion.
func (s *Service) IngestionAssets(ctx context.Context, id string) (string, []domain.AssetGroup, error) {
	rec, err := s.GetIngestion(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return rec.StoreID, rec.AssetGroups, nil
}

// CancelIngestion brings the ingestion up to date and then freezes it.
// Ingestions that already finished are returned unchanged.
func (s *Service) CancelIngestion(ctx context.Context, id string) (*domain.Ingestion, error) {
	now := s.clock.Now()
	var out *domain.Ingestion
	err := s.withIngestion(id, func(rec *domain.Ingestion) error {
		s.ingestionEngine.Recompute(rec, now)
		if s.ingestionEngine.Cancel(rec) {
			s.logger.Debug().Str("ingestion_id", id).Int("progress", rec.Progress).Msg("simulation: ingestion canceled")
		}
		out = rec.Clone()
		return nil
	})
	return out, err
}

// RecordSelection replaces the selected asset ids of an ingestion.
func (s *Service) RecordSelection(ctx context.Context, id string, selectedIDs []string) ([]string, error) {
	var out []string
	err := s.withIngestion(id, func(rec *domain.Ingestion) error {
		out = ApplySelection(rec, selectedIDs)
		return nil
	})
	return out, err
}

// FinalizeIngestion completes the ingestion, promotes its selected assets into
// the library and makes the store visible to every known user.
func (s *Service) FinalizeIngestion(ctx context.Context, id string) (FinalizeResult, error) {
	var result FinalizeResult
	err := s.withIngestion(id, func(rec *domain.Ingestion) error {
		ForceComplete(rec)
		now := s.clock.Now()
		promoted := Promote(rec)
		for i := range promoted {
			promoted[i].CreatedAt = now
			if err := s.assets.Create(ctx, &promoted[i]); err != nil {
				return fmt.Errorf("promote asset %s: %w", promoted[i].ID, err)
			}
		}
		if err := s.linkStoreForAllUsers(ctx, rec.StoreID); err != nil {
			return err
		}
		result = FinalizeResult{AssetLibraryID: s.libraryID, TotalAssets: len(promoted)}
		return nil
	})
	if err != nil {
		return FinalizeResult{}, err
	}
	s.logger.Debug().Str("ingestion_id", id).Int("total_assets", result.TotalAssets).Msg("simulation: ingestion finalized")
	return result, nil
}

// TODO: confirm with product whether finalize should only link the store to
// the user who ran the ingestion instead of every known user.
func (s *Service) linkStoreForAllUsers(ctx context.Context, storeID string) error {
	userIDs, err := s.users.UserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, userID := range userIDs {
		if err := s.users.LinkStore(ctx, userID, storeID); err != nil {
			return fmt.Errorf("link store %s to user %s: %w", storeID, userID, err)
		}
	}
	return nil
}

// StartJob queues a new generation job of the given kind.
func (s *Service) StartJob(ctx context.Context, kind domain.JobKind, payload JobPayload) (*domain.Job, error) {
	store, err := s.jobStore(kind)
	if err != nil {
		return nil, err
	}
	job := &domain.Job{
		ID:        s.newID(jobIDPrefixes[kind]),
		Kind:      kind,
		Status:    domain.JobStatusQueued,
		CreatedAt: s.clock.Now(),
	}
	switch kind {
	case domain.JobKindPoster:
		job.Poster = payload.Poster
		if job.Poster == nil {
			job.Poster = &domain.PosterPayload{}
		}
	case domain.JobKindMenuBoard:
		job.MenuBoard = payload.MenuBoard
		if job.MenuBoard == nil {
			job.MenuBoard = &domain.MenuBoardPayload{}
		}
	}
	store.put(job.ID, job)
	s.logger.Debug().Str("job_id", job.ID).Str("kind", string(kind)).Msg("simulation: job queued")
	return job.Clone(), nil
}

// GetJob returns the job recomputed against the current time.
func (s *Service) GetJob(ctx context.Context, kind domain.JobKind, id string) (*domain.Job, error) {
	now := s.clock.Now()
	var out *domain.Job
	err := s.withJob(kind, id, func(job *domain.Job) error {
		s.jobEngine.Recompute(job, now)
		out = job.Clone()
		return nil
	})
	return out, err
}

// SaveJob promotes a succeeded job into an asset and returns the asset id. A
// job that has not succeeded yet is marked failed and domain.ErrNotReady is
// returned.
func (s *Service) SaveJob(ctx context.Context, kind domain.JobKind, id string) (string, error) {
	now := s.clock.Now()
	var assetID string
	err := s.withJob(kind, id, func(job *domain.Job) error {
		s.jobEngine.Recompute(job, now)
		draft, err := s.jobEngine.Save(job)
		if err != nil {
			s.logger.Debug().Str("job_id", id).Msg("simulation: job saved before it finished")
			return err
		}
		asset := &domain.Asset{
			ID:        s.newID("asset"),
			Name:      draft.Name,
			URL:       draft.URL,
			Category:  draft.Category,
			StoreID:   s.defaultStoreID,
			CreatedAt: now,
		}
		if asset.URL == "" {
			asset.URL = domain.DefaultAssetURL
		}
		if err := s.assets.Create(ctx, asset); err != nil {
			return fmt.Errorf("save %s job %s: %w", kind, id, err)
		}
		assetID = asset.ID
		return nil
	})
	return assetID, err
}

func (s *Service) withIngestion(id string, fn func(rec *domain.Ingestion) error) error {
	found, err := s.ingestions.with(id, fn)
	if !found {
		return fmt.Errorf("ingestion %q: %w", id, domain.ErrNotFound)
	}
	return err
}

func (s *Service) withJob(kind domain.JobKind, id string, fn func(job *domain.Job) error) error {
	store, err := s.jobStore(kind)
	if err != nil {
		return err
	}
	found, err := store.with(id, fn)
	if !found {
		return fmt.Errorf("%s job %q: %w", kind, id, domain.ErrNotFound)
	}
	return err
}

func (s *Service) jobStore(kind domain.JobKind) (*recordStore[domain.Job], error) {
	store, ok := s.jobs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownJobKind, kind)
	}
	return store, nil
}
