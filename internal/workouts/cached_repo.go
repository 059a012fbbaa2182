package workouts

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const (
	snapshotCacheKey = "workouts::snapshot"
	// freecache drops values larger than 1/1024 of its size, so this allows ~256KB snapshots
	snapshotCacheSize = 256 * 1024 * 1024
)

// CachedRepo keeps the full entries snapshot in an in-process cache. Every read view is
// computed from ListAll, so caching it spares the db a full scan per request. Any write
// drops the snapshot.
type CachedRepo struct {
	repo  entriesRepo
	cache *freecache.Cache
	ttl   time.Duration

	// generation is bumped on every invalidation; a snapshot loaded under an older
	// generation is never stored.
	mu         sync.Mutex
	generation uint64
}

func NewCachedRepo(repo entriesRepo, ttl time.Duration) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: freecache.NewCache(snapshotCacheSize),
		ttl:   ttl,
	}
}

func (r *CachedRepo) ListAll(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.cached.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if snapshotBytes, err := r.cache.Get([]byte(snapshotCacheKey)); err == nil {
		var entries []Entry
		if err := json.Unmarshal(snapshotBytes, &entries); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return entries, nil
		} else {
			log.Errorf("failed to unmarshal entries snapshot from cache: %s", err)
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	r.mu.Lock()
	loadGeneration := r.generation
	r.mu.Unlock()

	entries, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshotBytes, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("failed to marshal entries snapshot: %s", err)
		return entries, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != loadGeneration {
		log.Tracef("entries snapshot outdated by a concurrent write, not caching")
		return entries, nil
	}
	if err := r.cache.Set([]byte(snapshotCacheKey), snapshotBytes, r.expireSeconds()); err != nil {
		log.Debugf("entries snapshot not cached (%d bytes): %s", len(snapshotBytes), err)
	}

	return entries, nil
}

func (r *CachedRepo) Get(ctx context.Context, id int) (*Entry, error) {
	return r.repo.Get(ctx, id)
}

func (r *CachedRepo) Add(ctx context.Context, entry Entry) (*Entry, error) {
	defer r.Invalidate()
	return r.repo.Add(ctx, entry)
}

func (r *CachedRepo) BulkUpsert(ctx context.Context, entries []Entry) ([]Entry, error) {
	defer r.Invalidate()
	return r.repo.BulkUpsert(ctx, entries)
}

func (r *CachedRepo) List(ctx context.Context, page, size int) ([]Entry, error) {
	return r.repo.List(ctx, page, size)
}

func (r *CachedRepo) Count(ctx context.Context) (int, error) {
	return r.repo.Count(ctx)
}

func (r *CachedRepo) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.cache.Del([]byte(snapshotCacheKey))
}

func (r *CachedRepo) expireSeconds() int {
	return int(math.Ceil(r.ttl.Seconds()))
}
