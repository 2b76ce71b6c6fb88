package subscriber

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const createTable = `CREATE TABLE IF NOT EXISTS subscribers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    subscribed_at TIMESTAMP NOT NULL,
    verified INTEGER NOT NULL DEFAULT 0
  )`

// SQLiteStore keeps one single-connection pool for writes, which serializes
// them, and a separate read-only pool for queries.
type SQLiteStore struct {
	readWriteDB *sql.DB
	readDB      *sql.DB
	log         *zap.SugaredLogger
	now         func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the subscribers table exists.
func NewSQLiteStore(log *zap.SugaredLogger, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create new file for db")
	}
	_ = f.Close()

	openWrite := fmt.Sprintf("file:%s?mode=rw&_journal_mode=WAL&_busy_timeout=5000", path)
	openRead := fmt.Sprintf("file:%s?mode=ro&_journal_mode=WAL&_busy_timeout=5000", path)

	rw, err := sql.Open("sqlite3", openWrite)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite3 database")
	}
	rw.SetMaxOpenConns(1)

	if _, err := rw.Exec(createTable); err != nil {
		_ = rw.Close()
		return nil, errors.Wrap(err, "failed to create table")
	}

	ro, err := sql.Open("sqlite3", openRead)
	if err != nil {
		_ = rw.Close()
		return nil, errors.Wrap(err, "failed to open read-only sqlite3 database")
	}

	log.Infow("Subscribers table ready", "path", path)
	return &SQLiteStore{
		readWriteDB: rw,
		readDB:      ro,
		log:         log.Named("subscriber-store"),
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLiteStore) Add(ctx context.Context, email string) (Subscriber, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return Subscriber{}, err
	}

	sub := Subscriber{Email: email, SubscribedAt: s.now()}
	res, err := s.readWriteDB.ExecContext(ctx,
		`INSERT INTO subscribers (email, subscribed_at, verified) VALUES (?, ?, 0)`,
		sub.Email, sub.SubscribedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Subscriber{}, ErrDuplicateEmail
		}
		return Subscriber{}, errors.Wrap(err, "failed to insert subscriber")
	}

	if sub.ID, err = res.LastInsertId(); err != nil {
		return Subscriber{}, errors.Wrap(err, "failed to read subscriber id")
	}
	s.log.Debugw("Subscriber added", "id", sub.ID)
	return sub, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, email string) error {
	res, err := s.readWriteDB.ExecContext(ctx, `DELETE FROM subscribers WHERE email = ?`, email)
	if err != nil {
		return errors.Wrap(err, "failed to delete subscriber")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Subscriber, error) {
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT id, email, subscribed_at, verified FROM subscribers ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query subscribers")
	}
	defer func() { _ = rows.Close() }()

	subs := []Subscriber{}
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.Verified); err != nil {
			return nil, errors.Wrap(err, "failed to scan subscriber")
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error after scanning subscribers")
	}
	return subs, nil
}

func (s *SQLiteStore) Emails(ctx context.Context) ([]string, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return EmailsOf(subs), nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.readDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	rerr := s.readDB.Close()
	if err := s.readWriteDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close sqlite3 database")
	}
	return rerr
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
