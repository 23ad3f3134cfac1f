package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/inspectana/leadgen/internal/db"
	"github.com/inspectana/leadgen/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, maxConns, minConns int32) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	if minConns <= 0 {
		minConns = 2
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
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
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS inspection_requests (
	id                TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	full_name         TEXT NOT NULL,
	email             TEXT NOT NULL,
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
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT inspection_requests_email_unique UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS interest_leads (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	company    TEXT NOT NULL,
	phone      TEXT NOT NULL,
	message    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT interest_leads_email_unique UNIQUE (email)
);

CREATE INDEX IF NOT EXISTS idx_inspection_requests_created_at ON inspection_requests(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_interest_leads_created_at ON interest_leads(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *PostgresStore) CreateInspectionRequest(ctx context.Context, req model.InspectionRequest) (*model.InspectionRequest, error) {
	req.ID = uuid.New().String()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO inspection_requests
		 (id, full_name, email, phone, street, city, state, zip_code,
		  inspection_type, insurance_company, policy_number, agency_name,
		  agent_name, agent_phone, agent_email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		req.ID, req.FullName, req.Email, req.Phone, req.Street, req.City,
		req.State, req.ZipCode, req.InspectionType, req.InsuranceCompany,
		req.PolicyNumber, req.AgencyName, req.AgentName, req.AgentPhone,
		req.AgentEmail, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, eris.Wrap(err, "postgres: insert inspection request")
	}
	return &req, nil
}

func (s *PostgresStore) CreateInterestLead(ctx context.Context, lead model.InterestLead) (*model.InterestLead, error) {
	lead.ID = uuid.New().String()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO interest_leads
		 (id, first_name, last_name, email, company, phone, message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Company,
		lead.Phone, lead.Message, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, eris.Wrap(err, "postgres: insert interest lead")
	}
	return &lead, nil
}

func (s *PostgresStore) ListInspectionRequests(ctx context.Context, filter ListFilter) ([]model.InspectionRequest, error) {
	query := `SELECT id, full_name, email, phone, street, city, state, zip_code,
	                 inspection_type, insurance_company, policy_number, agency_name,
	                 agent_name, agent_phone, agent_email, created_at, updated_at
	          FROM inspection_requests ORDER BY created_at DESC`
	query, args := applyFilter(query, filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list inspection requests")
	}
	defer rows.Close()

	var reqs []model.InspectionRequest
	for rows.Next() {
		var r model.InspectionRequest
		var policyNumber *string
		if err := rows.Scan(&r.ID, &r.FullName, &r.Email, &r.Phone, &r.Street,
			&r.City, &r.State, &r.ZipCode, &r.InspectionType, &r.InsuranceCompany,
			&policyNumber, &r.AgencyName, &r.AgentName, &r.AgentPhone,
			&r.AgentEmail, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan inspection request")
		}
		if policyNumber != nil {
			r.PolicyNumber = *policyNumber
		}
		reqs = append(reqs, r)
	}
	return reqs, eris.Wrap(rows.Err(), "postgres: list inspection requests iterate")
}

func (s *PostgresStore) ListInterestLeads(ctx context.Context, filter ListFilter) ([]model.InterestLead, error) {
	query := `SELECT id, first_name, last_name, email, company, phone, message, created_at, updated_at
	          FROM interest_leads ORDER BY created_at DESC`
	query, args := applyFilter(query, filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list interest leads")
	}
	defer rows.Close()

	var leads []model.InterestLead
	for rows.Next() {
		var l model.InterestLead
		var message *string
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email,
			&l.Company, &l.Phone, &message, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan interest lead")
		}
		if message != nil {
			l.Message = *message
		}
		leads = append(leads, l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list interest leads iterate")
}

// applyFilter appends LIMIT/OFFSET clauses with positional args.
func applyFilter(query string, filter ListFilter) (string, []any) {
	var args []any
	argIdx := 1

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}
	return query, args
}
