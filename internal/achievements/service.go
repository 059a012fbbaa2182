package achievements

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=achievements_test

type achievementsRepo interface {
	List(ctx context.Context) ([]Achievement, error)
	Get(ctx context.Context, id int) (*Achievement, error)
	Add(ctx context.Context, a Achievement) (*Achievement, error)
	Update(ctx context.Context, a *Achievement) error
	Delete(ctx context.Context, id int) error
	SetClaimed(ctx context.Context, id int, progress float64) error
	UpdateProgress(ctx context.Context, id2progress map[int]float64) error
	Count(ctx context.Context) (int, error)
}

type entriesSource interface {
	ListAll(ctx context.Context) ([]workouts.Entry, error)
}

// Service recomputes achievement progress from the current entries snapshot on every read.
type Service struct {
	repo    achievementsRepo
	entries entriesSource
}

func NewService(repo achievementsRepo, entries entriesSource) *Service {
	return &Service{
		repo:    repo,
		entries: entries,
	}
}

// List returns all achievements with fresh progress, and writes the recomputed progress
// back as the stored cache. A failed write-back is only logged.
func (s *Service) List(ctx context.Context) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	achievements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	stale := make(map[int]float64)
	for i := range achievements {
		cached := achievements[i].Progress
		if err := Evaluate(entries, &achievements[i]); err != nil {
			return nil, fmt.Errorf("evaluate achievement %d: %w", achievements[i].ID, err)
		}
		if achievements[i].Progress != cached {
			stale[achievements[i].ID] = achievements[i].Progress
		}
	}
	span.SetAttributes(attribute.Int("achievements.stale", len(stale)))

	if len(stale) > 0 {
		if err := s.repo.UpdateProgress(ctx, stale); err != nil {
			log.Errorf("write back progress of %d achievements: %s", len(stale), err)
		}
	}

	return achievements, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	a, entries, err := s.getWithEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	cached := a.Progress
	if err := Evaluate(entries, a); err != nil {
		return nil, fmt.Errorf("evaluate achievement %d: %w", id, err)
	}
	if a.Progress != cached {
		if err := s.repo.UpdateProgress(ctx, map[int]float64{a.ID: a.Progress}); err != nil {
			log.Errorf("write back progress of achievement %d: %s", a.ID, err)
		}
	}

	return a, nil
}

// Create stores a new definition. New achievements always start unclaimed.
func (s *Service) Create(ctx context.Context, a Achievement) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a.applyDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	a.Claimed = false
	if err := Evaluate(entries, &a); err != nil {
		return nil, fmt.Errorf("evaluate new achievement: %w", err)
	}

	added, err := s.repo.Add(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("add achievement: %w", err)
	}
	added.Status = a.Status
	return added, nil
}

// Update replaces the definition and display fields. Claimed can only move from false to
// true here, under the same rule as Claim; a claimed achievement stays claimed.
func (s *Service) Update(ctx context.Context, a Achievement) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", a.ID))

	a.applyDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	existing, entries, err := s.getWithEntries(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	claimRequested := a.Claimed && !existing.Claimed
	a.Claimed = existing.Claimed
	a.CreatedAt = existing.CreatedAt

	if err := Evaluate(entries, &a); err != nil {
		return nil, fmt.Errorf("evaluate achievement %d: %w", a.ID, err)
	}
	if claimRequested {
		if err := Claim(&a, a.Progress); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &a); err != nil {
		return nil, fmt.Errorf("update achievement %d: %w", a.ID, err)
	}
	return &a, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete achievement %d: %w", id, err)
	}
	return nil
}

// Claim recomputes progress and claims the achievement when it is complete and unclaimed.
func (s *Service) Claim(ctx context.Context, id int) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.claim")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	a, entries, err := s.getWithEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	progress, err := EvaluateProgress(entries, *a)
	if err != nil {
		return nil, fmt.Errorf("evaluate achievement %d: %w", id, err)
	}
	if err := Claim(a, progress); err != nil {
		return nil, err
	}

	if err := s.repo.SetClaimed(ctx, id, progress); err != nil {
		return nil, fmt.Errorf("claim achievement %d: %w", id, err)
	}
	return a, nil
}

// SeedDefaults adds DefaultSeed for every user, but only into an empty table.
func (s *Service) SeedDefaults(ctx context.Context, users []string) (added int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.seed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debugf("achievements seed skipped, %d achievements present", count)
		return 0, nil
	}

	for _, user := range users {
		for _, a := range DefaultSeed(user) {
			if _, err := s.repo.Add(ctx, a); err != nil {
				return added, fmt.Errorf("seed achievement [%s] for %s: %w", a.Title, user, err)
			}
			added++
		}
	}
	span.SetAttributes(attribute.Int("achievements.seeded", added))

	return added, nil
}

func (s *Service) getWithEntries(ctx context.Context, id int) (*Achievement, []workouts.Entry, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get achievement %d: %w", id, err)
	}
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list entries: %w", err)
	}
	return a, entries, nil
}
