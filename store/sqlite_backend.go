package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/josephgoksu/todowing/models"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required
)

const sqliteTasksSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	task_id        INTEGER PRIMARY KEY,
	position       INTEGER NOT NULL,
	title          TEXT    NOT NULL,
	description    TEXT    NOT NULL DEFAULT '',
	category       TEXT    NOT NULL DEFAULT 'General',
	completed      INTEGER NOT NULL DEFAULT 0,
	created_date   TEXT    NOT NULL,
	completed_date TEXT
);`

const sqliteMetaSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const metaNextID = "next_id"

// sqliteBackend persists the Document in a SQLite database: one row per task
// plus the next_id counter in the meta table.
type sqliteBackend struct {
	path string
	db   *sql.DB
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, stmt := range []string{sqliteTasksSchema, sqliteMetaSchema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func newSQLiteBackend(path string) (*sqliteBackend, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	return &sqliteBackend{path: path, db: db}, nil
}

func (b *sqliteBackend) read() (*models.Document, error) {
	return readSQLiteDocument(b.db)
}

func readSQLiteDocument(db *sql.DB) (*models.Document, error) {
	var doc models.Document

	var raw string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaNextID).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("read next_id: %w", err)
	default:
		next, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, fmt.Errorf("parse next_id %q: %w", raw, convErr)
		}
		doc.NextID = &next
	}

	rows, err := db.Query(
		`SELECT task_id, title, description, category, completed, created_date, completed_date
		 FROM tasks ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            int
			title         string
			description   string
			category      string
			completed     int
			createdDate   string
			completedDate sql.NullString
		)
		if err := rows.Scan(&id, &title, &description, &category, &completed, &createdDate, &completedDate); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		done := completed != 0
		rec := models.Record{
			Title:       title,
			Description: &description,
			Category:    &category,
			Completed:   &done,
			CreatedDate: &createdDate,
			TaskID:      &id,
		}
		if completedDate.Valid {
			stamp := completedDate.String
			rec.CompletedDate = &stamp
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if doc.NextID == nil && len(doc.Tasks) == 0 {
		return nil, nil
	}
	return &doc, nil
}

// write replaces both tables in one transaction.
func (b *sqliteBackend) write(doc models.Document) error {
	return writeSQLiteDocument(b.db, doc)
}

func writeSQLiteDocument(db *sql.DB, doc models.Document) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO tasks (task_id, position, title, description, category, completed, created_date, completed_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range doc.Tasks {
		task, _ := models.FromRecord(rec, timeNow())
		var completedDate interface{}
		if task.CompletedDate != nil {
			completedDate = *task.CompletedDate
		}
		if _, err := stmt.Exec(
			task.ID, i, task.Title, task.Description, task.Category,
			boolToInt(task.Completed), task.CreatedDate, completedDate,
		); err != nil {
			return fmt.Errorf("insert task %d: %w", task.ID, err)
		}
	}

	if doc.NextID != nil {
		if _, err := tx.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			metaNextID, strconv.Itoa(*doc.NextID),
		); err != nil {
			return fmt.Errorf("write next_id: %w", err)
		}
	}

	return tx.Commit()
}

// backup snapshots the database with VACUUM INTO, which refuses to overwrite.
func (b *sqliteBackend) backup(destinationPath string) error {
	if err := os.Remove(destinationPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace existing backup %s: %w", destinationPath, err)
	}
	if _, err := b.db.Exec(`VACUUM INTO ?`, destinationPath); err != nil {
		return fmt.Errorf("vacuum into %s: %w", destinationPath, err)
	}
	return nil
}

// restore copies the document held in another database into this one.
func (b *sqliteBackend) restore(sourcePath string) error {
	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("failed to read backup file %s: %w", sourcePath, err)
	}
	src, err := openSQLite(sourcePath)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	doc, err := readSQLiteDocument(src)
	if err != nil {
		return fmt.Errorf("read backup %s: %w", sourcePath, err)
	}
	if doc == nil {
		doc = &models.Document{}
	}
	return writeSQLiteDocument(b.db, *doc)
}

func (b *sqliteBackend) close() error {
	return b.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
