// Package store persists aggregated counters in SQLite so an analysis can be
// resumed on a later run.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"github.com/rs/zerolog"

	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/stats"
)

// Store is a SQLite-backed snapshot of an aggregator.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens or creates the database at path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db, logger: logger.With().Str("component", "store").Str("path", path).Logger()}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			hand_id TEXT PRIMARY KEY
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cells (
			player TEXT NOT NULL,
			position INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			counters BLOB NOT NULL,
			PRIMARY KEY (player, position, depth)
		)
	`)
	return err
}

// Save replaces the stored snapshot with agg in a single transaction.
func (s *Store) Save(ctx context.Context, agg *stats.Aggregator) error {
	handIDs, cells := agg.Snapshot()
	b := agg.Buckets()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM meta", "DELETE FROM hands", "DELETE FROM cells"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	meta := map[string]string{
		"shallow_below": strconv.FormatFloat(b.ShallowBelow, 'g', -1, 64),
		"deep_above":    strconv.FormatFloat(b.DeepAbove, 'g', -1, 64),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("save meta: %w", err)
		}
	}

	insertHand, err := tx.PrepareContext(ctx, "INSERT INTO hands (hand_id) VALUES (?)")
	if err != nil {
		return err
	}
	defer insertHand.Close()
	for _, id := range handIDs {
		if _, err := insertHand.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("save hand %s: %w", id, err)
		}
	}

	insertCell, err := tx.PrepareContext(ctx, "INSERT INTO cells (player, position, depth, counters) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertCell.Close()
	for _, c := range cells {
		blob, err := json.Marshal(c.Counters)
		if err != nil {
			return err
		}
		if _, err := insertCell.ExecContext(ctx, c.Player, int(c.Cell.Position), int(c.Cell.Depth), blob); err != nil {
			return fmt.Errorf("save cell for %s: %w", c.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug().Int("hands", len(handIDs)).Int("cells", len(cells)).Msg("Snapshot saved")
	return nil
}

// Load rebuilds the stored aggregator. An empty database yields an empty
// aggregator with buckets. Counters are bucketed when merged, so a snapshot
// saved with different stack-depth boundaries is rejected.
func (s *Store) Load(ctx context.Context, buckets stats.DepthBuckets) (*stats.Aggregator, error) {
	stored, ok, err := s.buckets(ctx)
	if err != nil {
		return nil, err
	}
	if ok && stored != buckets {
		return nil, fmt.Errorf("snapshot uses stack depth %.1f/%.1f, configured %.1f/%.1f",
			stored.ShallowBelow, stored.DeepAbove, buckets.ShallowBelow, buckets.DeepAbove)
	}

	var handIDs []string
	rows, err := s.db.QueryContext(ctx, "SELECT hand_id FROM hands ORDER BY hand_id")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		handIDs = append(handIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var cells []stats.CellCounters
	rows, err = s.db.QueryContext(ctx, "SELECT player, position, depth, counters FROM cells ORDER BY player, position, depth")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c               stats.CellCounters
			position, depth int
			blob            []byte
		)
		if err := rows.Scan(&c.Player, &position, &depth, &blob); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &c.Counters); err != nil {
			return nil, fmt.Errorf("decode counters for %s: %w", c.Player, err)
		}
		c.Cell = stats.Cell{Position: hand.Position(position), Depth: stats.Depth(depth)}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug().Int("hands", len(handIDs)).Int("cells", len(cells)).Msg("Snapshot loaded")
	return stats.Restore(buckets, handIDs, cells), nil
}

func (s *Store) buckets(ctx context.Context) (stats.DepthBuckets, bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return stats.DepthBuckets{}, false, err
	}
	defer rows.Close()

	var (
		b     stats.DepthBuckets
		found int
	)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return b, false, err
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return b, false, fmt.Errorf("meta %s: %w", key, err)
		}
		switch key {
		case "shallow_below":
			b.ShallowBelow = v
			found++
		case "deep_above":
			b.DeepAbove = v
			found++
		}
	}
	return b, found == 2, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
