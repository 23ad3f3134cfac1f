package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/inspectana/leadgen/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Intended for local
// development; production runs against the hosted Postgres.
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
CREATE TABLE IF NOT EXISTS inspection_requests (
	id                TEXT PRIMARY KEY,
	full_name         TEXT NOT NULL,
	email             TEXT NOT NULL UNIQUE,
	phone             TEXT NOT NULL,
	street            TEXT NOT NULL,
	city              TEXT NOT NULL,
	state             TEXT NOT NULL,
	zip_code          TEXT NOT NULL,
	inspection_type   TEXT NOT NULL,
	insurance_company TEXT NOT NULL,
	policy_number     TEXT,
	agency_name       TEXT NOT NULL,
	agent_name        TEXT NOT NULL,
	agent_phone       TEXT NOT NULL,
	agent_email       TEXT NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS interest_leads (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	company    TEXT NOT NULL,
	phone      TEXT NOT NULL,
	message    TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_inspection_requests_created_at ON inspection_requests(created_at);
CREATE INDEX IF NOT EXISTS idx_interest_leads_created_at ON interest_leads(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqliteUniqueViolation matches the driver's constraint error text; the
// modernc driver exposes no typed error for this.
func sqliteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *SQLiteStore) CreateInspectionRequest(ctx context.Context, req model.InspectionRequest) (*model.InspectionRequest, error) {
	req.ID = uuid.New().String()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inspection_requests
		 (id, full_name, email, phone, street, city, state, zip_code,
		  inspection_type, insurance_company, policy_number, agency_name,
		  agent_name, agent_phone, agent_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.FullName, req.Email, req.Phone, req.Street, req.City,
		req.State, req.ZipCode, req.InspectionType, req.InsuranceCompany,
		req.PolicyNumber, req.AgencyName, req.AgentName, req.AgentPhone,
		req.AgentEmail, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if sqliteUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, eris.Wrap(err, "sqlite: insert inspection request")
	}
	return &req, nil
}

func (s *SQLiteStore) CreateInterestLead(ctx context.Context, lead model.InterestLead) (*model.InterestLead, error) {
	lead.ID = uuid.New().String()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interest_leads
		 (id, first_name, last_name, email, company, phone, message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Company,
		lead.Phone, lead.Message, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if sqliteUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, eris.Wrap(err, "sqlite: insert interest lead")
	}
	return &lead, nil
}

func (s *SQLiteStore) ListInspectionRequests(ctx context.Context, filter ListFilter) ([]model.InspectionRequest, error) {
	query := `SELECT id, full_name, email, phone, street, city, state, zip_code,
	                 inspection_type, insurance_company, policy_number, agency_name,
	                 agent_name, agent_phone, agent_email, created_at, updated_at
	          FROM inspection_requests ORDER BY created_at DESC LIMIT ?`
	args := []any{normalizeLimit(filter.Limit)}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list inspection requests")
	}
	defer rows.Close()

	var reqs []model.InspectionRequest
	for rows.Next() {
		var r model.InspectionRequest
		var policyNumber sql.NullString
		if err := rows.Scan(&r.ID, &r.FullName, &r.Email, &r.Phone, &r.Street,
			&r.City, &r.State, &r.ZipCode, &r.InspectionType, &r.InsuranceCompany,
			&policyNumber, &r.AgencyName, &r.AgentName, &r.AgentPhone,
			&r.AgentEmail, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan inspection request")
		}
		r.PolicyNumber = policyNumber.String
		reqs = append(reqs, r)
	}
	return reqs, eris.Wrap(rows.Err(), "sqlite: list inspection requests iterate")
}

func (s *SQLiteStore) ListInterestLeads(ctx context.Context, filter ListFilter) ([]model.InterestLead, error) {
	query := `SELECT id, first_name, last_name, email, company, phone, message, created_at, updated_at
	          FROM interest_leads ORDER BY created_at DESC LIMIT ?`
	args := []any{normalizeLimit(filter.Limit)}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list interest leads")
	}
	defer rows.Close()

	var leads []model.InterestLead
	for rows.Next() {
		var l model.InterestLead
		var message sql.NullString
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email,
			&l.Company, &l.Phone, &message, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan interest lead")
		}
		l.Message = message.String
		leads = append(leads, l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list interest leads iterate")
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
