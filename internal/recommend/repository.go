package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresGateway implements Gateway with bulk reads against the workout
// database. All queries are read-only; malformed rows are skipped with a
// logged warning instead of failing the request.
type postgresGateway struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewGateway creates the Postgres-backed data gateway.
func NewGateway(pool *pgxpool.Pool, logger *slog.Logger) Gateway {
	return &postgresGateway{pool: pool, logger: logger}
}

// ExerciseCatalog fetches the full exercise catalog in one query, plus a
// cheap version marker derived from the row count and the latest update
// timestamp, so the engine can cache feature snapshots per version.
func (g *postgresGateway) ExerciseCatalog(ctx context.Context) (_ []Exercise, _ string, err error) {
	var version string
	err = g.pool.QueryRow(ctx, `
		SELECT count(*) || ':' || coalesce(max(updated_at)::text, '')
		FROM exercises`).Scan(&version)
	if err != nil {
		return nil, "", fmt.Errorf("%w: query catalog version: %w", ErrDataUnavailable, err)
	}

	rows, err := g.pool.Query(ctx, `
		SELECT id::text,
		       coalesce(name, ''),
		       coalesce(primary_muscles, '{}'),
		       coalesce(secondary_muscles, '{}'),
		       coalesce(equipment, ''),
		       coalesce(difficulty, ''),
		       coalesce(category, ''),
		       coalesce(force, ''),
		       coalesce(mechanic, '')
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, "", fmt.Errorf("%w: query exercises: %w", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var catalog []Exercise
	for rows.Next() {
		var ex Exercise
		var difficulty, force, mechanic string
		if err = rows.Scan(&ex.ID, &ex.Name, &ex.PrimaryMuscles, &ex.SecondaryMuscles,
			&ex.Equipment, &difficulty, &ex.Category, &force, &mechanic); err != nil {
			return nil, "", fmt.Errorf("%w: scan exercise: %w", ErrDataUnavailable, err)
		}
		ex.Difficulty = Difficulty(difficulty)
		ex.Force = Force(force)
		ex.Mechanic = Mechanic(mechanic)
		catalog = append(catalog, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, "", fmt.Errorf("%w: iterate exercises: %w", ErrDataUnavailable, err)
	}

	return catalog, version, nil
}

// UserHistory fetches one user's workout history. The user id is compared
// as text so a malformed id yields an empty history (cold start) rather
// than a cast error.
func (g *postgresGateway) UserHistory(ctx context.Context, userID string) ([]HistoryEntry, error) {
	return g.queryHistory(ctx, `
		SELECT we.id::text,
		       w.user_id::text,
		       we.workout_id::text,
		       we.exercise_id::text,
		       coalesce(we.order_index, 0),
		       w.created_at
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id::text = $1
		ORDER BY w.created_at, we.order_index`, `
		SELECT es.workout_exercise_id::text,
		       coalesce(es.reps, 0),
		       coalesce(es.weight_kg, 0),
		       coalesce(es.completed, false)
		FROM exercise_sets es
		JOIN workout_exercises we ON we.id = es.workout_exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id::text = $1`, userID)
}

// AllHistory fetches the full history snapshot for a background rebuild.
func (g *postgresGateway) AllHistory(ctx context.Context) ([]HistoryEntry, error) {
	return g.queryHistory(ctx, `
		SELECT we.id::text,
		       w.user_id::text,
		       we.workout_id::text,
		       we.exercise_id::text,
		       coalesce(we.order_index, 0),
		       w.created_at
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		ORDER BY w.created_at, we.order_index`, `
		SELECT es.workout_exercise_id::text,
		       coalesce(es.reps, 0),
		       coalesce(es.weight_kg, 0),
		       coalesce(es.completed, false)
		FROM exercise_sets es`)
}

// queryHistory runs the two bulk reads (workout exercises, then their
// sets) and stitches them in memory, avoiding per-row round trips.
func (g *postgresGateway) queryHistory(
	ctx context.Context, entriesQuery, setsQuery string, args ...any,
) (_ []HistoryEntry, err error) {
	rows, err := g.pool.Query(ctx, entriesQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query workout history: %w", ErrDataUnavailable, err)
	}

	var (
		entries    []HistoryEntry
		entryIndex map[string]int
	)
	if entries, entryIndex, err = scanHistoryEntries(rows); err != nil {
		return nil, err
	}

	setRows, err := g.pool.Query(ctx, setsQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query exercise sets: %w", ErrDataUnavailable, err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			workoutExerciseID string
			set               SetRecord
		)
		if err = setRows.Scan(&workoutExerciseID, &set.Reps, &set.WeightKg, &set.Completed); err != nil {
			return nil, fmt.Errorf("%w: scan exercise set: %w", ErrDataUnavailable, err)
		}
		idx, ok := entryIndex[workoutExerciseID]
		if !ok {
			// Orphaned set row; skip it rather than fail the read.
			g.logger.LogAttrs(ctx, slog.LevelWarn, "exercise set without workout exercise",
				slog.String("workout_exercise_id", workoutExerciseID))
			continue
		}
		entries[idx].Sets = append(entries[idx].Sets, set)
	}
	if err = setRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate exercise sets: %w", ErrDataUnavailable, err)
	}

	return entries, nil
}

// scanHistoryEntries drains the workout-exercise rows and indexes them by
// workout_exercise id for the set stitch.
func scanHistoryEntries(rows pgx.Rows) (_ []HistoryEntry, _ map[string]int, err error) {
	defer rows.Close()

	var entries []HistoryEntry
	entryIndex := make(map[string]int)
	for rows.Next() {
		var (
			workoutExerciseID string
			entry             HistoryEntry
			performedAt       time.Time
		)
		if err = rows.Scan(&workoutExerciseID, &entry.UserID, &entry.WorkoutID,
			&entry.ExerciseID, &entry.Position, &performedAt); err != nil {
			return nil, nil, fmt.Errorf("%w: scan workout exercise: %w", ErrDataUnavailable, err)
		}
		entry.PerformedAt = performedAt
		entryIndex[workoutExerciseID] = len(entries)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: iterate workout exercises: %w", ErrDataUnavailable, err)
	}
	return entries, entryIndex, nil
}
