package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/coinop-logan/personal-finance-display/internal/core"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository is the alternate backend. It keeps the whole-document
// contract: Load returns every row, Save replaces the full table in one
// transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// migrateSchema brings the entries schema up to date from the embedded
// migration files. golang-migrate's Close tears down the connection it
// wraps, so migrations run on their own short-lived one rather than the
// repository's.
func migrateSchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("wrap migration connection: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (core.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, checking, credit_available, hours_worked,
		       pay_per_hour, other_incoming, note
		FROM entries ORDER BY date`)
	if err != nil {
		slog.WarnContext(ctx, "Entries query failed, starting empty", "error", err)
		return core.Collection{}, nil
	}
	defer rows.Close()

	c := core.Collection{}
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Checking, &e.CreditAvailable,
			&e.HoursWorked, &e.PayPerHour, &e.OtherIncoming, &e.Note); err != nil {
			slog.WarnContext(ctx, "Entry row unreadable, starting empty", "error", err)
			return core.Collection{}, nil
		}
		c = append(c, e)
	}
	if err := rows.Err(); err != nil {
		slog.WarnContext(ctx, "Entries iteration failed, starting empty", "error", err)
		return core.Collection{}, nil
	}
	return c, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, c core.Collection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, date, checking, credit_available,
		                     hours_worked, pay_per_hour, other_incoming, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range c {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Date, e.Checking,
			e.CreditAvailable, e.HoursWorked, e.PayPerHour, e.OtherIncoming,
			e.Note); err != nil {
			return fmt.Errorf("insert entry %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.DebugContext(ctx, "Collection saved to SQLite", "entries", len(c))
	return nil
}
