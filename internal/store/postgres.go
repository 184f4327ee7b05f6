package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	query         TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT 'web',
	status        TEXT NOT NULL DEFAULT 'active',
	request_count INTEGER NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_active   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(email, query)
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_last_active ON leads(last_active);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertLead(ctx context.Context, email, query, source string) (*model.Lead, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query = strings.TrimSpace(query)
	if source == "" {
		source = "web"
	}
	now := time.Now().UTC()

	row := s.pool.QueryRow(ctx,
		`INSERT INTO leads (id, email, query, source, status, request_count, created_at, last_active)
		 VALUES ($1, $2, $3, $4, $5, 1, $6, $6)
		 ON CONFLICT (email, query) DO UPDATE SET
			request_count = leads.request_count + 1,
			last_active = excluded.last_active
		 RETURNING id, email, query, source, status, request_count, created_at, last_active`,
		uuid.New().String(), email, query, source, string(model.LeadStatusActive), now,
	)

	lead, err := scanLead(row)
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: upsert lead")
	}
	return lead, lead.RequestCount == 1, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, limit int) ([]model.Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, query, source, status, request_count, created_at, last_active
		 FROM leads ORDER BY last_active DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) Stats(ctx context.Context) (*model.LeadStats, error) {
	stats := &model.LeadStats{LeadsBySource: map[string]int{}}

	row := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM leads`,
	)
	if err := row.Scan(&stats.TotalLeads, &stats.ActiveLeads); err != nil {
		return nil, eris.Wrap(err, "postgres: count leads")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT lower(query), COUNT(*) AS n FROM leads
		 GROUP BY lower(query) ORDER BY n DESC, lower(query) ASC LIMIT $1`,
		topQueriesLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: top queries")
	}
	defer rows.Close()
	for rows.Next() {
		var qc model.QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, eris.Wrap(err, "postgres: scan query count")
		}
		stats.TopQueries = append(stats.TopQueries, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: top queries iterate")
	}

	srcRows, err := s.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM leads GROUP BY source`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: leads by source")
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var source string
		var n int
		if err := srcRows.Scan(&source, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan source count")
		}
		stats.LeadsBySource[source] = n
	}
	return stats, eris.Wrap(srcRows.Err(), "postgres: leads by source iterate")
}

func (s *PostgresStore) Unsubscribe(ctx context.Context, email string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET status = $1, last_active = $2 WHERE email = $3`,
		string(model.LeadStatusUnsubscribed), time.Now().UTC(), strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return eris.Wrap(err, "postgres: unsubscribe")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Open picks a backend from the configured driver.
func Open(ctx context.Context, driver, databaseURL, sqlitePath string) (Store, error) {
	switch driver {
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	case "sqlite", "":
		return NewSQLite(sqlitePath)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

var _ Store = (*PostgresStore)(nil)
var _ Store = (*SQLiteStore)(nil)
