package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/caprae-capital/leadgen-cli/internal/model"
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
	enriched       INTEGER NOT NULL DEFAULT 0,
	created_date   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score);
CREATE INDEX IF NOT EXISTS idx_leads_source ON leads(source);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const leadColumns = `id, first_name, last_name, company_name, title, revenue, industry, email,
	phone, linkedin_url, website, location, employees, source, score, email_template, enriched, created_date`

func (s *SQLiteStore) InsertLeads(ctx context.Context, leads []model.Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin insert")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leads (`+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	inserted := 0
	for _, lead := range leads {
		if lead.ID == "" {
			lead.ID = uuid.New().String()
		}
		_, err := stmt.ExecContext(ctx,
			lead.ID, lead.FirstName, lead.LastName, lead.CompanyName, lead.Title,
			lead.Revenue, lead.Industry, lead.NormalizedEmail(),
			lead.Phone, lead.LinkedInURL, lead.Website, lead.Location, lead.Employees,
			lead.Source, lead.Score, lead.OutreachEmail, boolToInt(lead.Enriched), lead.CreatedAt,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert lead %s", lead.ID)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit insert")
	}
	return inserted, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any

	if filter.MinScore > 0 {
		query += ` AND score >= ?`
		args = append(args, filter.MinScore)
	}
	if filter.Industry != "" {
		query += ` AND instr(lower(industry), lower(?)) > 0`
		args = append(args, filter.Industry)
	}
	if filter.Source != "" {
		query += ` AND instr(lower(source), lower(?)) > 0`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY rowid`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == errLeadNotFound {
		return nil, eris.Errorf("sqlite: lead not found: %s", id)
	}
	return lead, err
}

func (s *SQLiteStore) DeleteLeads(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM leads WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete leads")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

func (s *SQLiteStore) DeleteAllLeads(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM leads`)
	return eris.Wrap(err, "sqlite: delete all leads")
}

func (s *SQLiteStore) ListEmails(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT email FROM leads WHERE email != ''`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list emails")
	}
	defer rows.Close()

	emails := make(map[string]bool)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan email")
		}
		emails[email] = true
	}
	return emails, eris.Wrap(rows.Err(), "sqlite: list emails iterate")
}

// helpers

var errLeadNotFound = eris.New("lead not found")

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var enriched int

	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.CompanyName, &l.Title,
		&l.Revenue, &l.Industry, &l.Email,
		&l.Phone, &l.LinkedInURL, &l.Website, &l.Location, &l.Employees,
		&l.Source, &l.Score, &l.OutreachEmail, &enriched, &l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errLeadNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}
	l.Enriched = enriched != 0
	return &l, nil
}
