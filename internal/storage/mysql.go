package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"logsift/internal/config"
	"logsift/internal/domain"
)

const recordsTable = "log_records"

const createRecordsTable = "CREATE TABLE IF NOT EXISTS `" + recordsTable + "` (" +
	"`id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
	"`run_id` CHAR(36) NOT NULL," +
	"`source` VARCHAR(1024) NOT NULL," +
	"`seq` INT NOT NULL," +
	"`kind` VARCHAR(32) NOT NULL," +
	"`logged_at` VARCHAR(64) NULL," +
	"`level` VARCHAR(32) NULL," +
	"`result` VARCHAR(8) NULL," +
	"`test_name` VARCHAR(1024) NULL," +
	"`text` MEDIUMTEXT NOT NULL," +
	"`payload` JSON NOT NULL," +
	"INDEX `idx_run` (`run_id`)," +
	"INDEX `idx_kind` (`kind`)" +
	") DEFAULT CHARSET=utf8mb4"

const insertRecord = "INSERT INTO `" + recordsTable + "` " +
	"(`run_id`, `source`, `seq`, `kind`, `logged_at`, `level`, `result`, `test_name`, `text`, `payload`) " +
	"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

var databaseNamePattern = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)

// MySQLStore writes finalized records to a MySQL table for downstream indexing jobs
type MySQLStore struct {
	cfg    *config.Config
	driver string
	db     *sql.DB
}

// NewMySQLStore creates a MySQLStore; call Open before saving
func NewMySQLStore(cfg *config.Config) *MySQLStore {
	return &MySQLStore{cfg: cfg, driver: "mysql"}
}

// DSN returns the driver connection string, with or without the database name
func (s *MySQLStore) DSN(withDatabase bool) string {
	db := s.cfg.Database
	dsn := mysql.NewConfig()
	dsn.User = db.User
	dsn.Passwd = db.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(db.Host, db.Port)
	if withDatabase {
		dsn.DBName = db.Name
	}
	return dsn.FormatDSN()
}

// Open connects to the server, creates the database if it does not exist and
// ensures the records table.
func (s *MySQLStore) Open(ctx context.Context) error {
	name := s.cfg.Database.Name
	if !isValidDatabaseName(name) {
		return fmt.Errorf("invalid database name: %q", name)
	}

	server, err := sql.Open(s.driver, s.DSN(false))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()

	if err := server.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := server.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}

	db, err := sql.Open(s.driver, s.DSN(true))
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", name, err)
	}
	s.db = db
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	return nil
}

// EnsureSchema creates the records table if it does not exist
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createRecordsTable); err != nil {
		return fmt.Errorf("failed to create table %s: %w", recordsTable, err)
	}
	return nil
}

// SaveRun stores the records of every source of run and returns the row count
func (s *MySQLStore) SaveRun(ctx context.Context, run *domain.Run) (int, error) {
	total := 0
	for _, src := range run.Sources {
		if len(src.Records) == 0 {
			continue
		}
		n, err := s.SaveRecords(ctx, run.ID, src.Path, src.Records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SaveRecords inserts records for one source in a single transaction
func (s *MySQLStore) SaveRecords(ctx context.Context, runID, source string, records []domain.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		args, err := recordRow(runID, source, i, rec)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert record %d of %s: %w", i, source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit records of %s: %w", source, err)
	}
	return len(records), nil
}

// Close closes the database handle
func (s *MySQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// recordRow returns the insert arguments for one record, in column order
func recordRow(runID, source string, seq int, rec domain.Record) ([]any, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record %d: %w", seq, err)
	}
	return []any{
		runID,
		source,
		seq,
		rec.Kind.String(),
		nullable(rec.Timestamp),
		nullable(rec.Level),
		nullable(rec.Result),
		nullable(rec.TestName),
		rec.Text(),
		string(payload),
	}, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isValidDatabaseName allows only names that are safe to interpolate as a quoted identifier
func isValidDatabaseName(name string) bool {
	return databaseNamePattern.MatchString(name)
}
