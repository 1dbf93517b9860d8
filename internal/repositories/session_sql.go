package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotelbook/internal/db"
	"hotelbook/internal/domain"
)

const sessionTable = "web_sessions"

const sessionDDL = `
CREATE TABLE IF NOT EXISTS web_sessions (
	kind       VARCHAR(32)  NOT NULL,
	id         VARCHAR(64)  NOT NULL,
	owner      VARCHAR(64)  NOT NULL,
	payload    MEDIUMTEXT   NOT NULL,
	expires_at DATETIME     NOT NULL,
	updated_at DATETIME     NOT NULL,
	PRIMARY KEY (kind, id),
	KEY idx_web_sessions_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// SQLSessionStore keeps session state in MySQL so several gateway instances
// can serve the same browser.
type SQLSessionStore struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewSQLSessionStore(conn *sql.DB) *SQLSessionStore {
	return &SQLSessionStore{DB: conn, Now: time.Now}
}

// EnsureSchema creates the sessions table when it does not exist yet.
func (s *SQLSessionStore) EnsureSchema(ctx context.Context) error {
	return db.EnsureTable(ctx, s.DB, sessionTable, sessionDDL)
}

func (s *SQLSessionStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SQLSessionStore) Save(ctx context.Context, kind SessionKind, id, owner string, payload []byte, ttl time.Duration) error {
	now := s.now()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO web_sessions (kind, id, owner, payload, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			owner = VALUES(owner),
			payload = VALUES(payload),
			expires_at = VALUES(expires_at),
			updated_at = VALUES(updated_at)`,
		string(kind), id, owner, string(payload), now.Add(ttl), now,
	)
	if err != nil {
		return domain.InternalError{Msg: "save session", Err: err}
	}
	return nil
}

func (s *SQLSessionStore) Load(ctx context.Context, kind SessionKind, id, owner string) ([]byte, error) {
	var (
		storedOwner string
		payload     string
		expiresAt   time.Time
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT owner, payload, expires_at
		FROM web_sessions
		WHERE kind = ? AND id = ?
		LIMIT 1`,
		string(kind), id,
	).Scan(&storedOwner, &payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError{Resource: string(kind)}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "load session", Err: err}
	}
	if storedOwner != owner || !s.now().Before(expiresAt.UTC()) {
		return nil, domain.NotFoundError{Resource: string(kind)}
	}
	return []byte(payload), nil
}

func (s *SQLSessionStore) Delete(ctx context.Context, kind SessionKind, id string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE kind = ? AND id = ?`, string(kind), id); err != nil {
		return domain.InternalError{Msg: "delete session", Err: err}
	}
	return nil
}

func (s *SQLSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, s.now())
	if err != nil {
		return 0, domain.InternalError{Msg: "purge sessions", Err: err}
	}
	return res.RowsAffected()
}
