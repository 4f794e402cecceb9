package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"psephos/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS contests (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sheet TEXT NOT NULL,
  rowNo INTEGER NOT NULL,
  cellsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS raw_systems (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  rowNo INTEGER NOT NULL,
  countryTerritory TEXT NOT NULL,
  answers TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_raw_systems_country ON raw_systems(countryTerritory);

CREATE TABLE IF NOT EXISTS normalized_systems (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  countryTerritory TEXT NOT NULL,
  votingSystem TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_normalized_systems_system ON normalized_systems(votingSystem);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceContests swaps the stored contest dataset for the freshly
// loaded one. One loader, one run, so replace rather than merge.
func (d *DB) ReplaceContests(ds internal.ContestDataset) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM contests`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO contests (sheet, rowNo, cellsJson) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range ds.Rows {
		cellsJSON, _ := json.Marshal(row.Cells)
		if _, err := stmt.Exec(row.Sheet, row.RowNo, string(cellsJSON)); err != nil {
			return err
		}
	}

	columnsJSON, _ := json.Marshal(ds.Columns)
	if _, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES ('contests.columns', ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, string(columnsJSON)); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DB) CountContests() (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM contests`).Scan(&count)
	return count, err
}

func (d *DB) ReplaceRawSystems(rows []internal.RawSystemsRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM raw_systems`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO raw_systems (rowNo, countryTerritory, answers) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.RowNo, row.CountryTerritory, row.Answers); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRawSystems() ([]internal.RawSystemsRow, error) {
	rows, err := d.conn.Query(`
SELECT rowNo, countryTerritory, answers FROM raw_systems ORDER BY rowNo ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RawSystemsRow
	for rows.Next() {
		var row internal.RawSystemsRow
		if err := rows.Scan(&row.RowNo, &row.CountryTerritory, &row.Answers); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceNormalizedSystems(rows []internal.NormalizedSystemsRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM normalized_systems`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO normalized_systems (countryTerritory, votingSystem) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.CountryTerritory, row.VotingSystem); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListNormalizedSystems() ([]internal.NormalizedSystemsRow, error) {
	rows, err := d.conn.Query(`
SELECT countryTerritory, votingSystem FROM normalized_systems ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.NormalizedSystemsRow
	for rows.Next() {
		var row internal.NormalizedSystemsRow
		if err := rows.Scan(&row.CountryTerritory, &row.VotingSystem); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, timingsJson, countsJson) VALUES (?, ?, ?)`,
		traceID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
