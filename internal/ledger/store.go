package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeFormat is RFC3339 with fixed-width nanoseconds so that lexicographic
// order on the stored text matches chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the dispatch journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record journals one dispatch attempt and returns the stored entry. The row
// is written before relocation so a crash between print and move is visible
// on the next cycle.
func (s *Store) Record(ctx context.Context, folder, sourcePath, printer string, outcome Outcome, detail string) (*Entry, error) {
	entry := &Entry{
		ID:         uuid.NewString(),
		Folder:     folder,
		SourcePath: sourcePath,
		Filename:   filepath.Base(sourcePath),
		Printer:    printer,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO print_jobs (
            id, folder, source_path, filename, printer, outcome, detail,
            relocated_path, created_at, relocated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Folder,
		entry.SourcePath,
		entry.Filename,
		nullableString(entry.Printer),
		string(entry.Outcome),
		nullableString(entry.Detail),
		nil,
		entry.CreatedAt.Format(timeFormat),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("insert print job: %w", err)
	}
	return entry, nil
}

// MarkRelocated records where the file ended up after its post-print move.
func (s *Store) MarkRelocated(ctx context.Context, id, relocatedPath string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE print_jobs SET relocated_path = ?, relocated_at = ? WHERE id = ?`,
		relocatedPath,
		now.Format(timeFormat),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark relocated: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("print job %s not found", id)
	}
	return nil
}

// PendingRelocation returns the most recent entry for sourcePath that was
// printed but never relocated, or nil when none exists. This is the
// idempotency check that prevents reprinting a file left in place by a failed
// move.
func (s *Store) PendingRelocation(ctx context.Context, sourcePath string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM print_jobs
         WHERE source_path = ? AND outcome = ? AND relocated_at IS NULL
         ORDER BY created_at DESC LIMIT 1`,
		sourcePath,
		string(OutcomePrinted),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pending relocation: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM print_jobs ORDER BY created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list print jobs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats returns a count of entries grouped by outcome.
func (s *Store) Stats(ctx context.Context) (map[Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(1) FROM print_jobs GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Outcome]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		stats[Outcome(outcome)] = count
	}
	return stats, rows.Err()
}

const entryColumns = "id, folder, source_path, filename, printer, outcome, detail, relocated_path, created_at, relocated_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id            string
		folder        string
		sourcePath    string
		filename      string
		printer       sql.NullString
		outcome       string
		detail        sql.NullString
		relocatedPath sql.NullString
		createdRaw    string
		relocatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&folder,
		&sourcePath,
		&filename,
		&printer,
		&outcome,
		&detail,
		&relocatedPath,
		&createdRaw,
		&relocatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:            id,
		Folder:        folder,
		SourcePath:    sourcePath,
		Filename:      filename,
		Printer:       printer.String,
		Outcome:       Outcome(outcome),
		Detail:        detail.String,
		RelocatedPath: relocatedPath.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = created
	}
	if relocatedRaw.Valid {
		if relocated, err := time.Parse(time.RFC3339Nano, relocatedRaw.String); err == nil {
			entry.RelocatedAt = &relocated
		}
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
