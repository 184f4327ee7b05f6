package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadgen-cli/internal/model"
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
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	query         TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT 'web',
	status        TEXT NOT NULL DEFAULT 'active',
	request_count INTEGER NOT NULL DEFAULT 1,
	created_at    DATETIME NOT NULL,
	last_active   DATETIME NOT NULL,
	UNIQUE(email, query)
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_last_active ON leads(last_active);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertLead(ctx context.Context, email, query, source string) (*model.Lead, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query = strings.TrimSpace(query)
	if source == "" {
		source = "web"
	}
	now := time.Now().UTC()

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO leads (id, email, query, source, status, request_count, created_at, last_active)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		 ON CONFLICT(email, query) DO UPDATE SET
			request_count = request_count + 1,
			last_active = excluded.last_active
		 RETURNING id, email, query, source, status, request_count, created_at, last_active`,
		uuid.New().String(), email, query, source, string(model.LeadStatusActive), now, now,
	)

	lead, err := scanLead(row)
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: upsert lead")
	}
	return lead, lead.RequestCount == 1, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, limit int) ([]model.Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, query, source, status, request_count, created_at, last_active
		 FROM leads ORDER BY last_active DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) Stats(ctx context.Context) (*model.LeadStats, error) {
	stats := &model.LeadStats{LeadsBySource: map[string]int{}}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(status = 'active'), 0) FROM leads`,
	)
	if err := row.Scan(&stats.TotalLeads, &stats.ActiveLeads); err != nil {
		return nil, eris.Wrap(err, "sqlite: count leads")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT lower(query), COUNT(*) AS n FROM leads
		 GROUP BY lower(query) ORDER BY n DESC, lower(query) ASC LIMIT ?`,
		topQueriesLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: top queries")
	}
	defer rows.Close()
	for rows.Next() {
		var qc model.QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan query count")
		}
		stats.TopQueries = append(stats.TopQueries, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: top queries iterate")
	}

	srcRows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM leads GROUP BY source`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: leads by source")
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var source string
		var n int
		if err := srcRows.Scan(&source, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan source count")
		}
		stats.LeadsBySource[source] = n
	}
	return stats, eris.Wrap(srcRows.Err(), "sqlite: leads by source iterate")
}

func (s *SQLiteStore) Unsubscribe(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, last_active = ? WHERE email = ?`,
		string(model.LeadStatusUnsubscribed), time.Now().UTC(), strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: unsubscribe")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var status string
	err := row.Scan(&l.ID, &l.Email, &l.Query, &l.Source, &status, &l.RequestCount, &l.CreatedAt, &l.LastActive)
	if err != nil {
		return nil, err
	}
	l.Status = model.LeadStatus(status)
	return &l, nil
}
