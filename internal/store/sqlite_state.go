package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"

	"quire-cli/internal/model"
)

const sqliteFileName = "index.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI run overlaps the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notebooks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			is_default INTEGER NOT NULL,
			current_page_index INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			json TEXT NOT NULL,
			sum TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			notebook_id TEXT NOT NULL,
			page_number INTEGER NOT NULL,
			torn INTEGER NOT NULL,
			locked INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pages_notebook ON pages(notebook_id, page_number);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the whole collection with a replace-all strategy in one
// transaction. Each notebook row carries an xxhash of its JSON payload so
// Load can detect torn writes or on-disk corruption.
func (s Store) Save(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(st.Version)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "current_notebook_id", strings.TrimSpace(st.CurrentNotebookID)); err != nil {
		return err
	}

	for _, t := range []string{"notebooks", "pages"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, nb := range st.Notebooks {
		raw, err := json.Marshal(nb)
		if err != nil {
			return err
		}
		sum := fmt.Sprintf("%016x", xxhash.Sum64(raw))
		if _, err := tx.ExecContext(ctx, `INSERT INTO notebooks(
			id, name, is_default, current_page_index, created_at, json, sum, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			nb.ID, nb.Name, boolToInt(nb.Default), nb.CurrentPageIndex,
			nb.CreatedAt.UTC().Format(time.RFC3339Nano), string(raw), sum, nowMs,
		); err != nil {
			return err
		}
		// Page rows exist for indexed queries (stats, doctor-style checks);
		// the JSON blob on the notebook row is the source of truth.
		for _, p := range nb.Pages {
			if _, err := tx.ExecContext(ctx, `INSERT INTO pages(
				id, notebook_id, page_number, torn, locked, updated_at_unixms
			) VALUES(?, ?, ?, ?, ?, ?)`,
				p.ID, nb.ID, p.PageNumber, boolToInt(p.Torn), boolToInt(p.Locked), nowMs,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load reads the collection back. It never fails to the caller: missing
// or unreadable state, checksum mismatches, and malformed rows all
// degrade to an empty collection.
func (s Store) Load(ctx context.Context) *DB {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return NewDB()
	}
	defer db.Close()

	out := NewDB()

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.CurrentNotebookID = readMeta("current_notebook_id")

	rows, err := db.QueryContext(ctx, `SELECT json, sum FROM notebooks ORDER BY created_at, id`)
	if err != nil {
		return NewDB()
	}
	defer rows.Close()

	for rows.Next() {
		var js, sum string
		if err := rows.Scan(&js, &sum); err != nil {
			return NewDB()
		}
		if fmt.Sprintf("%016x", xxhash.Sum64String(js)) != sum {
			return NewDB()
		}
		var nb model.Notebook
		if err := json.Unmarshal([]byte(js), &nb); err != nil {
			return NewDB()
		}
		if len(nb.Pages) != model.PagesPerNotebook {
			// A notebook without its full page run is structurally invalid.
			return NewDB()
		}
		out.Notebooks = append(out.Notebooks, nb)
	}
	if err := rows.Err(); err != nil {
		return NewDB()
	}

	if out.Notebooks == nil {
		out.Notebooks = []model.Notebook{}
	}
	if _, _, ok := out.FindNotebook(out.CurrentNotebookID); !ok {
		out.CurrentNotebookID = ""
		if len(out.Notebooks) > 0 {
			out.CurrentNotebookID = out.Notebooks[0].ID
		}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
