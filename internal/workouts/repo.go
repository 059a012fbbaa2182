package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListAll returns the whole log in insertion order.
func (r *Repo) ListAll(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise, user_name, recorded_at, value
		FROM workout_entry
		ORDER BY id ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := rows2entries(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries.count", len(entries)))

	return entries, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	entry := &Entry{}
	err = r.db.QueryRow(ctx, `
		SELECT id, exercise, user_name, recorded_at, value
		FROM workout_entry
		WHERE id = $1;
	`, id).Scan(&entry.ID, &entry.Exercise, &entry.User, &entry.RecordedAt, &entry.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	entry.RecordedAt = entry.RecordedAt.UTC()

	return entry, nil
}

// Add appends a single entry. A duplicate (exercise, user, recordedAt) key is
// reported as a unique violation, see pkg.IsUniqueViolationError.
func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_entry (exercise, user_name, recorded_at, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`,
		entry.Exercise, entry.User, entry.RecordedAt, entry.Value,
	).Scan(&entry.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entry.id", entry.ID))
	entry.PreviousValue = nil
	return &entry, nil
}

// BulkUpsert applies every entry independently, keyed by (exercise, user, recordedAt):
// a missing row is inserted, an existing one gets its value overwritten. A failed row
// does not stop the rest of the batch. The applied entries are returned together with
// the combined error of the failed ones.
func (r *Repo) BulkUpsert(ctx context.Context, entries []Entry) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.bulkupsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries.count", len(entries)))

	applied := make([]Entry, 0, len(entries))
	for i, entry := range entries {
		upsertErr := r.db.QueryRow(ctx, `
			INSERT INTO workout_entry (exercise, user_name, recorded_at, value)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (exercise, user_name, recorded_at)
				DO UPDATE SET value = EXCLUDED.value
			RETURNING id;
		`,
			entry.Exercise, entry.User, entry.RecordedAt, entry.Value,
		).Scan(&entry.ID)
		if upsertErr != nil {
			err = multierr.Append(err, fmt.Errorf("upsert entry %d [%s/%s]: %w", i, entry.Exercise, entry.User, upsertErr))
			continue
		}
		applied = append(applied, entry)
	}
	span.SetAttributes(attribute.Int("entries.applied", len(applied)))

	return applied, err
}

// List returns one newest-first page of the history table; page starts at 1.
func (r *Repo) List(ctx context.Context, page, size int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page))
	span.SetAttributes(attribute.Int("size", size))

	if page < 1 {
		return nil, errors.New("page must be greater than 0")
	}
	if size < 1 {
		return nil, errors.New("size must be greater than 0")
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise, user_name, recorded_at, value
		FROM workout_entry
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1
		OFFSET $2;
	`, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2entries(rows)
}

func (r *Repo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_entry;`).Scan(&count); err != nil {
		return -1, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

func rows2entries(rows pgx.Rows) ([]Entry, error) {
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Exercise, &e.User, &e.RecordedAt, &e.Value); err != nil {
			return nil, err
		}
		e.RecordedAt = e.RecordedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
