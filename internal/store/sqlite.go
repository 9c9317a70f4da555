package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	token      TEXT NOT NULL,
	user       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS activity (
	id         TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	variant    TEXT NOT NULL DEFAULT '',
	subject    TEXT NOT NULL DEFAULT '',
	done_by    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity(created_at);
CREATE INDEX IF NOT EXISTS idx_activity_action ON activity(action);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSession upserts the single session row.
func (s *SQLiteStore) SaveSession(ctx context.Context, session model.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal user")
	}

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, user, created_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, user = excluded.user, created_at = excluded.created_at`,
		session.Token, string(userJSON), createdAt,
	)
	return eris.Wrap(err, "sqlite: save session")
}

// GetSession returns the stored session, or nil when none exists.
func (s *SQLiteStore) GetSession(ctx context.Context) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, user, created_at FROM sessions WHERE id = 1`,
	)

	var session model.Session
	var userJSON string
	err := row.Scan(&session.Token, &userJSON, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get session")
	}
	if err := json.Unmarshal([]byte(userJSON), &session.User); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal user")
	}
	return &session, nil
}

// DeleteSession removes the session row; deleting an absent session is
// not an error.
func (s *SQLiteStore) DeleteSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`)
	return eris.Wrap(err, "sqlite: delete session")
}

// LogActivity appends one row to the activity log, assigning the ID and
// timestamp when unset.
func (s *SQLiteStore) LogActivity(ctx context.Context, activity model.Activity) (*model.Activity, error) {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, action, variant, subject, done_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Action, string(activity.Variant), activity.Subject, activity.DoneBy, activity.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert activity")
	}
	return &activity, nil
}

// RecentActivity returns the newest rows first, capped at limit.
func (s *SQLiteStore) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, variant, subject, done_by, created_at FROM activity
		 ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list activity")
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var variant string
		if err := rows.Scan(&a.ID, &a.Action, &variant, &a.Subject, &a.DoneBy, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan activity")
		}
		a.Variant = model.Variant(variant)
		activities = append(activities, a)
	}
	return activities, eris.Wrap(rows.Err(), "sqlite: list activity iterate")
}
