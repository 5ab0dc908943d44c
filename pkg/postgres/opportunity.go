package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// Load reads the cached opportunity list in its stored order. An empty
// database yields an empty state.
func (d *DB) Load(ctx context.Context) (*store.CachedState, error) {
	state := &store.CachedState{}

	var lastFetched time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT owner_id, last_fetched FROM opportunity_cache_meta
	`).Scan(&state.OwnerID, &lastFetched)
	if err != nil {
		// No meta row means nothing has been cached yet.
		return state, nil
	}
	state.LastFetched = lastFetched.UTC()

	rows, err := d.pool.Query(ctx, `
		SELECT data FROM opportunity_cache ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunity cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan cached opportunity: %w", err)
		}
		var opp model.Opportunity
		if err := json.Unmarshal(data, &opp); err != nil {
			return nil, fmt.Errorf("failed to decode cached opportunity: %w", err)
		}
		state.Opportunities = append(state.Opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunity cache: %w", err)
	}

	return state, nil
}

// Save replaces the cached list wholesale, preserving list order via the
// position column.
func (d *DB) Save(ctx context.Context, state *store.CachedState) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM opportunity_cache`); err != nil {
		return fmt.Errorf("failed to clear opportunity cache: %w", err)
	}

	for i, opp := range state.Opportunities {
		data, err := json.Marshal(opp)
		if err != nil {
			return fmt.Errorf("failed to encode opportunity %s: %w", opp.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO opportunity_cache (id, owner_id, position, data)
			VALUES ($1, $2, $3, $4)
		`, opp.ID, state.OwnerID, i, data)
		if err != nil {
			return fmt.Errorf("failed to insert cached opportunity %s: %w", opp.ID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO opportunity_cache_meta (singleton, owner_id, last_fetched)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO UPDATE SET owner_id = $1, last_fetched = $2
	`, state.OwnerID, state.LastFetched.UTC())
	if err != nil {
		return fmt.Errorf("failed to update cache metadata: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}

// Clear removes all cached rows and the metadata.
func (d *DB) Clear(ctx context.Context) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM opportunity_cache`); err != nil {
		return fmt.Errorf("failed to clear opportunity cache: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM opportunity_cache_meta`); err != nil {
		return fmt.Errorf("failed to clear cache metadata: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}
