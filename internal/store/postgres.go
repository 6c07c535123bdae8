package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store depends on. pgxmock
// satisfies it for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
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

// NewPostgresFromPool wraps an existing pool (or a pgxmock pool).
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	seq            BIGSERIAL,
	id             TEXT PRIMARY KEY,
	first_name     TEXT NOT NULL DEFAULT '',
	last_name      TEXT NOT NULL DEFAULT '',
	company_name   TEXT NOT NULL DEFAULT '',
	title          TEXT NOT NULL DEFAULT '',
	revenue        TEXT NOT NULL DEFAULT '',
	industry       TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	linkedin_url   TEXT NOT NULL DEFAULT '',
	website        TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	employees      TEXT NOT NULL DEFAULT '',
	source         TEXT NOT NULL DEFAULT '',
	score          INTEGER NOT NULL DEFAULT 0,
	email_template TEXT NOT NULL DEFAULT '',
	enriched       BOOLEAN NOT NULL DEFAULT FALSE,
	created_date   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score);
CREATE INDEX IF NOT EXISTS idx_leads_source ON leads(source);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const pgLeadColumns = `id, first_name, last_name, company_name, title, revenue, industry, email,
	phone, linkedin_url, website, location, employees, source, score, email_template, enriched, created_date`

const pgInsertLead = `INSERT INTO leads (` + pgLeadColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

func (s *PostgresStore) InsertLeads(ctx context.Context, leads []model.Lead) (int, error) {
	inserted := 0
	for _, lead := range leads {
		if lead.ID == "" {
			lead.ID = uuid.New().String()
		}
		_, err := s.pool.Exec(ctx, pgInsertLead,
			lead.ID, lead.FirstName, lead.LastName, lead.CompanyName, lead.Title,
			lead.Revenue, lead.Industry, lead.NormalizedEmail(),
			lead.Phone, lead.LinkedInURL, lead.Website, lead.Location, lead.Employees,
			lead.Source, lead.Score, lead.OutreachEmail, lead.Enriched, lead.CreatedAt,
		)
		if err != nil {
			return inserted, eris.Wrapf(err, "postgres: insert lead %s", lead.ID)
		}
		inserted++
	}
	return inserted, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + pgLeadColumns + ` FROM leads WHERE 1=1`
	var args []any

	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		query += ` AND score >= $` + strconv.Itoa(len(args))
	}
	if filter.Industry != "" {
		args = append(args, "%"+filter.Industry+"%")
		query += ` AND industry ILIKE $` + strconv.Itoa(len(args))
	}
	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += ` AND source ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY seq`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += ` OFFSET $` + strconv.Itoa(len(args))
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		err := rows.Scan(
			&l.ID, &l.FirstName, &l.LastName, &l.CompanyName, &l.Title,
			&l.Revenue, &l.Industry, &l.Email,
			&l.Phone, &l.LinkedInURL, &l.Website, &l.Location, &l.Employees,
			&l.Source, &l.Score, &l.OutreachEmail, &l.Enriched, &l.CreatedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+pgLeadColumns+` FROM leads WHERE id = $1`, id)

	var l model.Lead
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.CompanyName, &l.Title,
		&l.Revenue, &l.Industry, &l.Email,
		&l.Phone, &l.LinkedInURL, &l.Website, &l.Location, &l.Employees,
		&l.Source, &l.Score, &l.OutreachEmail, &l.Enriched, &l.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: lead not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get lead")
	}
	return &l, nil
}

func (s *PostgresStore) DeleteLeads(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete leads")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) DeleteAllLeads(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM leads`)
	return eris.Wrap(err, "postgres: delete all leads")
}

func (s *PostgresStore) ListEmails(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `SELECT email FROM leads WHERE email != ''`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list emails")
	}
	defer rows.Close()

	emails := make(map[string]bool)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, eris.Wrap(err, "postgres: scan email")
		}
		emails[email] = true
	}
	return emails, eris.Wrap(rows.Err(), "postgres: list emails iterate")
}
