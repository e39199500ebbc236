// Package savestate persists scene save-game state (sector visibility and
// the scene shrink) in PostgreSQL, one record per save slot and scene.
package savestate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

// Connect opens a pgx pool and checks the connection.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// Repository manages the set_states and sector_states tables.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save stores st under slot, replacing an earlier save of the same scene.
func (r *Repository) Save(ctx context.Context, slot string, st set.State) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for %s/%s: %w", slot, st.Name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "slot", slot, "scene", st.Name, "error", err)
		}
	}()

	query := `
		INSERT INTO set_states (slot, scene, fingerprint, shrink_margin, saved_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (slot, scene)
		DO UPDATE SET fingerprint = $3, shrink_margin = $4, saved_at = now()
	`
	fingerprint := st.Fingerprint
	if fingerprint == nil {
		fingerprint = []byte{}
	}
	if _, err := tx.Exec(ctx, query, slot, st.Name, fingerprint, st.ShrinkMargin); err != nil {
		return fmt.Errorf("saving set state %s/%s: %w", slot, st.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sector_states WHERE slot = $1 AND scene = $2`, slot, st.Name); err != nil {
		return fmt.Errorf("deleting old sector states %s/%s: %w", slot, st.Name, err)
	}

	if len(st.Sectors) > 0 {
		rows := make([][]any, 0, len(st.Sectors))
		for i, ss := range st.Sectors {
			rows = append(rows, []any{slot, st.Name, int32(i), int32(ss.ID), ss.Visible})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"sector_states"},
			[]string{"slot", "scene", "position", "sector_id", "visible"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting sector states %s/%s: %w", slot, st.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set state %s/%s: %w", slot, st.Name, err)
	}

	slog.Debug("saved set state",
		"slot", slot,
		"scene", st.Name,
		"sectors", len(st.Sectors))
	return nil
}

// Load returns the state of scene saved under slot. found is false when
// there is no such save.
func (r *Repository) Load(ctx context.Context, slot, scene string) (st set.State, found bool, err error) {
	st.Name = scene
	err = r.db.QueryRow(ctx,
		`SELECT fingerprint, shrink_margin FROM set_states WHERE slot = $1 AND scene = $2`,
		slot, scene,
	).Scan(&st.Fingerprint, &st.ShrinkMargin)
	if errors.Is(err, pgx.ErrNoRows) {
		return set.State{}, false, nil
	}
	if err != nil {
		return set.State{}, false, fmt.Errorf("querying set state %s/%s: %w", slot, scene, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT sector_id, visible
		FROM sector_states
		WHERE slot = $1 AND scene = $2
		ORDER BY position
	`, slot, scene)
	if err != nil {
		return set.State{}, false, fmt.Errorf("querying sector states %s/%s: %w", slot, scene, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      int32
			visible bool
		)
		if err := rows.Scan(&id, &visible); err != nil {
			return set.State{}, false, fmt.Errorf("scanning sector state row: %w", err)
		}
		st.Sectors = append(st.Sectors, sector.State{ID: int(id), Visible: visible})
	}
	if err := rows.Err(); err != nil {
		return set.State{}, false, fmt.Errorf("iterating sector state rows: %w", err)
	}

	return st, true, nil
}

// Scenes returns the names of the scenes saved under slot, sorted.
func (r *Repository) Scenes(ctx context.Context, slot string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT scene FROM set_states WHERE slot = $1 ORDER BY scene`, slot)
	if err != nil {
		return nil, fmt.Errorf("querying scenes of slot %s: %w", slot, err)
	}
	scenes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collecting scenes of slot %s: %w", slot, err)
	}
	return scenes, nil
}

// Delete removes the save of scene under slot. Deleting a missing save is
// not an error.
func (r *Repository) Delete(ctx context.Context, slot, scene string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM set_states WHERE slot = $1 AND scene = $2`, slot, scene); err != nil {
		return fmt.Errorf("deleting set state %s/%s: %w", slot, scene, err)
	}
	return nil
}
