package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a SQLite table of every saved chunk.
type Index struct {
	db *sql.DB
}

func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open chunk index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		x INTEGER NOT NULL,
		z INTEGER NOT NULL,
		region TEXT NOT NULL,
		saved_at INTEGER NOT NULL,
		non_air_sections INTEGER NOT NULL,
		PRIMARY KEY (x, z)
	);`)
	if err != nil {
		return fmt.Errorf("create chunks table: %w", err)
	}
	return nil
}

// Record upserts rows in one transaction.
func (i *Index) Record(ctx context.Context, rows []ChunkRecord) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks (x, z, region, saved_at, non_air_sections)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (x, z) DO UPDATE SET region = excluded.region, saved_at = excluded.saved_at,
			non_air_sections = excluded.non_air_sections`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.X, r.Z, r.Region, r.SavedAt.UnixMilli(), r.NonAirSections); err != nil {
			return fmt.Errorf("record chunk (%d, %d): %w", r.X, r.Z, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of indexed chunks.
func (i *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := i.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Chunks lists every indexed chunk ordered by x then z.
func (i *Index) Chunks(ctx context.Context) ([]ChunkRecord, error) {
	rows, err := i.db.QueryContext(ctx, `SELECT x, z, region, saved_at, non_air_sections FROM chunks ORDER BY x, z`)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var out []ChunkRecord
	for rows.Next() {
		var r ChunkRecord
		var savedAt int64
		if err := rows.Scan(&r.X, &r.Z, &r.Region, &savedAt, &r.NonAirSections); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		r.SavedAt = time.UnixMilli(savedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (i *Index) Close() error { return i.db.Close() }
