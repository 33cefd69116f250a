package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded invocation: a script execution or a single REPL line.
type Run struct {
	ID          int64
	Source      string
	StartedAt   time.Time
	Outcome     string
	Diagnostics string // rendered diagnostics, one per line
	OutputLines int
}

type dialect struct {
	driver string
	idDDL  string
}

var (
	sqliteDialect   = dialect{driver: "sqlite3", idDDL: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	mysqlDialect    = dialect{driver: "mysql", idDDL: "BIGINT AUTO_INCREMENT PRIMARY KEY"}
	postgresDialect = dialect{driver: "postgres", idDDL: "BIGSERIAL PRIMARY KEY"}
)

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (d dialect) placeholder(n int) string {
	if d.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (d dialect) placeholders(count int) string {
	ps := make([]string, count)
	for i := range ps {
		ps[i] = d.placeholder(i + 1)
	}
	return strings.Join(ps, ", ")
}

// ParseDSN picks a driver from the scheme of dsn and returns the
// connection string that driver expects.
//
//	sqlite:runs.db | runs.db           -> sqlite3
//	mysql://user:pw@tcp(host:3306)/db  -> mysql (scheme stripped)
//	postgres://user:pw@host/db         -> postgres (url kept)
func ParseDSN(dsn string) (driver string, conn string, err error) {
	switch {
	case dsn == "":
		return "", "", errors.New("empty history dsn")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect.driver, dsn, nil
	case strings.HasPrefix(dsn, "mysql://"):
		return mysqlDialect.driver, strings.TrimPrefix(dsn, "mysql://"), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDialect.driver, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqliteDialect.driver, strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("unsupported history dsn scheme in %q", dsn)
	default:
		return sqliteDialect.driver, dsn, nil
	}
}

func dialectFor(driver string) dialect {
	switch driver {
	case mysqlDialect.driver:
		return mysqlDialect
	case postgresDialect.driver:
		return postgresDialect
	default:
		return sqliteDialect
	}
}

type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the store named by dsn and creates the runs table if it
// does not exist yet.
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, conn, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		slog.Error("failed to open history store", slog.String("driver", driver), slog.Any("error", err))
		return nil, fmt.Errorf("open %s history store: %w", driver, err)
	}
	if driver == sqliteDialect.driver {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s history store: %w", driver, err)
	}

	s := &Store{db: db, dialect: dialectFor(driver)}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("history store ready", slog.String("driver", driver))
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS runs (
	id %s,
	source VARCHAR(1024) NOT NULL,
	started_at BIGINT NOT NULL,
	outcome VARCHAR(32) NOT NULL,
	diagnostics TEXT NOT NULL,
	output_lines INTEGER NOT NULL
)`, s.dialect.idDDL)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

// Record inserts run and returns its generated id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	query := "INSERT INTO runs (source, started_at, outcome, diagnostics, output_lines) VALUES (" +
		s.dialect.placeholders(5) + ")"
	args := []any{run.Source, run.StartedAt.UnixNano(), run.Outcome, run.Diagnostics, run.OutputLines}

	// lib/pq does not implement LastInsertId
	if s.dialect.driver == postgresDialect.driver {
		var id int64
		err := s.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("record run: %w", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns at most n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	query := "SELECT id, source, started_at, outcome, diagnostics, output_lines FROM runs ORDER BY id DESC LIMIT " +
		s.dialect.placeholder(1)
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started int64
		if err := rows.Scan(&r.ID, &r.Source, &started, &r.Outcome, &r.Diagnostics, &r.OutputLines); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Print writes one line per run followed by its indented diagnostics.
func Print(w io.Writer, runs []Run) error {
	for _, r := range runs {
		_, err := fmt.Fprintf(w, "%4d  %s  %-13s  %3d lines  %s\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Outcome, r.OutputLines, r.Source)
		if err != nil {
			return err
		}
		if r.Diagnostics == "" {
			continue
		}
		for _, line := range strings.Split(r.Diagnostics, "\n") {
			if _, err := fmt.Fprintf(w, "      %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
