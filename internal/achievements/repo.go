package achievements

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

const achievementColumns = `
	id, title, description, reward_label, badge_ref, claimed,
	condition_type, comparator, threshold, target_exercise, target_user,
	progress, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT `+achievementColumns+` FROM achievement ORDER BY id ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("achievements.count", len(achievements)))
	return achievements, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	a, err := scanAchievement(r.db.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievement WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *Repo) Add(ctx context.Context, a Achievement) (_ *Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO achievement (
			title, description, reward_label, badge_ref, claimed,
			condition_type, comparator, threshold, target_exercise, target_user, progress
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at;
	`,
		a.Title, a.Description, a.RewardLabel, a.BadgeRef, a.Claimed,
		a.ConditionType, a.Comparator, a.Threshold, a.TargetExercise, a.TargetUser, a.Progress,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()

	span.SetAttributes(attribute.Int("achievement.id", a.ID))
	return &a, nil
}

func (r *Repo) Update(ctx context.Context, a *Achievement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", a.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE achievement SET
			title = $1, description = $2, reward_label = $3, badge_ref = $4,
			claimed = claimed OR $5,
			condition_type = $6, comparator = $7, threshold = $8,
			target_exercise = $9, target_user = $10, progress = $11
		WHERE id = $12;
	`,
		a.Title, a.Description, a.RewardLabel, a.BadgeRef, a.Claimed,
		a.ConditionType, a.Comparator, a.Threshold, a.TargetExercise, a.TargetUser, a.Progress,
		a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAchievementNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM achievement WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAchievementNotFound
	}
	return nil
}

// SetClaimed only flips unclaimed rows; an already claimed row is reported as ErrClaimNotAllowed.
func (r *Repo) SetClaimed(ctx context.Context, id int, progress float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.setclaimed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		UPDATE achievement SET claimed = TRUE, progress = $1
		WHERE id = $2 AND claimed = FALSE;
	`, progress, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: achievement %d missing or already claimed", ErrClaimNotAllowed, id)
	}
	return nil
}

// UpdateProgress writes back the recomputed progress cache of many achievements in one batch.
func (r *Repo) UpdateProgress(ctx context.Context, id2progress map[int]float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.updateprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("achievements.count", len(id2progress)))

	if len(id2progress) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, progress := range id2progress {
		batch.Queue(`UPDATE achievement SET progress = $1 WHERE id = $2;`, progress, id)
	}

	return r.db.SendBatch(ctx, batch).Close()
}

func (r *Repo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM achievement;`).Scan(&count); err != nil {
		return -1, fmt.Errorf("count achievements: %w", err)
	}
	return count, nil
}

func scanAchievement(row pgx.Row) (*Achievement, error) {
	a := &Achievement{}
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.RewardLabel, &a.BadgeRef, &a.Claimed,
		&a.ConditionType, &a.Comparator, &a.Threshold, &a.TargetExercise, &a.TargetUser,
		&a.Progress, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
