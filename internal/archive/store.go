// Package archive persists leaderboard snapshots to SQLite. Saving and
// loading are always explicit calls; the board itself never touches disk.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/openscrim/coachboard-go/internal/board"
)

// ErrSnapshotNotFound reports a snapshot id the archive does not hold.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes one stored board snapshot.
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
	PlayerCount int       `json:"player_count"`
}

// Store reads and writes snapshots in a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens or creates the archive database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewFromDB wraps an existing database handle. The caller keeps ownership
// and must run Migrate before first use.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the archive tables.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			player_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at DESC);`,

		// Position preserves board order across save and load
		`CREATE TABLE IF NOT EXISTS snapshot_players (
			snapshot_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			metrics_json TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position),
			FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
		);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin migrate: %w", err)
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return fmt.Errorf("archive: migrate: %w", err)
		}
	}
	return tx.Commit()
}

// SaveSnapshot stores the records as one new snapshot and returns its id.
// Everything goes in a single transaction; record order lands in the
// position column.
func (s *Store) SaveSnapshot(ctx context.Context, label string, recs []board.PlayerRecord) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("archive: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, label, created_at, player_count) VALUES (?, ?, ?, ?)`,
		id.String(), label, now, len(recs),
	); err != nil {
		return uuid.Nil, fmt.Errorf("archive: insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_players (snapshot_id, position, player_id, metrics_json)
		 VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		metrics, err := json.Marshal(rec.Metrics)
		if err != nil {
			return uuid.Nil, fmt.Errorf("archive: marshal metrics for %q: %w", rec.PlayerID, err)
		}
		if _, err := stmt.ExecContext(ctx, id.String(), i, rec.PlayerID, string(metrics)); err != nil {
			return uuid.Nil, fmt.Errorf("archive: insert player #%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("archive: commit: %w", err)
	}
	return id, nil
}

// LoadSnapshot returns a snapshot's records in their original board order.
func (s *Store) LoadSnapshot(ctx context.Context, id uuid.UUID) ([]board.PlayerRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE id = ?`, id.String()).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("archive: load snapshot: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("archive: load snapshot %s: %w", id, ErrSnapshotNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, metrics_json
		FROM snapshot_players
		WHERE snapshot_id = ?
		ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("archive: load players: %w", err)
	}
	defer rows.Close()

	var recs []board.PlayerRecord
	for rows.Next() {
		var rec board.PlayerRecord
		var metricsJSON string
		if err := rows.Scan(&rec.PlayerID, &metricsJSON); err != nil {
			return nil, fmt.Errorf("archive: scan player: %w", err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &rec.Metrics); err != nil {
			return nil, fmt.Errorf("archive: unmarshal metrics for %q: %w", rec.PlayerID, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: load players: %w", err)
	}
	return recs, nil
}

// LatestSnapshot loads the most recently saved snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (Snapshot, []board.PlayerRecord, error) {
	var snap Snapshot
	var idStr string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, player_count
		FROM snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT 1`).Scan(&idStr, &snap.Label, &snap.CreatedAt, &snap.PlayerCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Snapshot{}, nil, fmt.Errorf("archive: latest snapshot: %w", ErrSnapshotNotFound)
	case err != nil:
		return Snapshot{}, nil, fmt.Errorf("archive: latest snapshot: %w", err)
	}
	snap.ID = uuid.MustParse(idStr)

	recs, err := s.LoadSnapshot(ctx, snap.ID)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return snap, recs, nil
}

// ListSnapshots returns snapshot metadata, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit, offset int) ([]Snapshot, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at, player_count
		FROM snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("archive: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var idStr string
		if err := rows.Scan(&idStr, &snap.Label, &snap.CreatedAt, &snap.PlayerCount); err != nil {
			return nil, fmt.Errorf("archive: scan snapshot: %w", err)
		}
		snap.ID = uuid.MustParse(idStr)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// AllSnapshots returns metadata for every snapshot, newest first, paging
// past the ListSnapshots limit.
func (s *Store) AllSnapshots(ctx context.Context) ([]Snapshot, error) {
	const page = 500
	var out []Snapshot
	for offset := 0; ; offset += page {
		snaps, err := s.ListSnapshots(ctx, page, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, snaps...)
		if len(snaps) < page {
			return out, nil
		}
	}
}

// DeleteSnapshot removes a snapshot and its players.
func (s *Store) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("archive: delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive: delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("archive: delete snapshot %s: %w", id, ErrSnapshotNotFound)
	}
	return nil
}
