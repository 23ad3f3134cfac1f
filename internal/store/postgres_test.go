package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectana/leadgen/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

// anyArgs returns n pgxmock.AnyArg matchers; pgxmock requires the argument
// count to be declared even when the values are irrelevant to the test.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func sampleInspectionRequest() model.InspectionRequest {
	return model.InspectionRequest{
		FullName:         "Jane Homeowner",
		Email:            "jane@example.com",
		Phone:            "2395550142",
		Street:           "100 Gulf Breeze Ln",
		City:             "Naples",
		State:            "FL",
		ZipCode:          "34102",
		InspectionType:   string(model.InspectionFourPoint),
		InsuranceCompany: "Coastal Mutual",
		PolicyNumber:     "CM-12345",
		AgencyName:       "Sunshine Agency",
		AgentName:        "Alex Agent",
		AgentPhone:       "2395550188",
		AgentEmail:       "alex@sunshine.example",
	}
}

func sampleInterestLead() model.InterestLead {
	return model.InterestLead{
		FirstName: "Pat",
		LastName:  "Broker",
		Email:     "pat@brokerage.example",
		Company:   "Brokerage LLC",
		Phone:     "2395550177",
		Message:   "Interested in a demo.",
	}
}

func TestPostgresStore_CreateInspectionRequest(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO inspection_requests`).
		WithArgs(pgxmock.AnyArg(), "Jane Homeowner", "jane@example.com", "2395550142",
			"100 Gulf Breeze Ln", "Naples", "FL", "34102",
			string(model.InspectionFourPoint), "Coastal Mutual", "CM-12345",
			"Sunshine Agency", "Alex Agent", "2395550188", "alex@sunshine.example",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := s.CreateInspectionRequest(context.Background(), sampleInspectionRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateInspectionRequest_DuplicateEmail(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO inspection_requests`).
		WithArgs(anyArgs(17)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "inspection_requests_email_unique"})

	_, err := s.CreateInspectionRequest(context.Background(), sampleInspectionRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateInspectionRequest_InsertError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO inspection_requests`).
		WithArgs(anyArgs(17)...).
		WillReturnError(eris.New("connection reset"))

	_, err := s.CreateInspectionRequest(context.Background(), sampleInspectionRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "insert inspection request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateInterestLead(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO interest_leads`).
		WithArgs(pgxmock.AnyArg(), "Pat", "Broker", "pat@brokerage.example",
			"Brokerage LLC", "2395550177", "Interested in a demo.",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := s.CreateInterestLead(context.Background(), sampleInterestLead())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateInterestLead_DuplicateEmail(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO interest_leads`).
		WithArgs(anyArgs(9)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "interest_leads_email_unique"})

	_, err := s.CreateInterestLead(context.Background(), sampleInterestLead())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListInspectionRequests(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	policy := "CM-12345"
	rows := pgxmock.NewRows([]string{
		"id", "full_name", "email", "phone", "street", "city", "state", "zip_code",
		"inspection_type", "insurance_company", "policy_number", "agency_name",
		"agent_name", "agent_phone", "agent_email", "created_at", "updated_at",
	}).
		AddRow("req-2", "Jane Homeowner", "jane@example.com", "2395550142",
			"100 Gulf Breeze Ln", "Naples", "FL", "34102",
			string(model.InspectionFourPoint), "Coastal Mutual", &policy,
			"Sunshine Agency", "Alex Agent", "2395550188", "alex@sunshine.example",
			now, now).
		AddRow("req-1", "Sam Seller", "sam@example.com", "2395550100",
			"200 Palm Ct", "Fort Myers", "FL", "33901",
			string(model.InspectionRoof), "Gulf Shield", (*string)(nil),
			"Palm Agency", "Bo Agent", "2395550111", "bo@palm.example",
			now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM inspection_requests ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(rows)

	reqs, err := s.ListInspectionRequests(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "req-2", reqs[0].ID)
	assert.Equal(t, "CM-12345", reqs[0].PolicyNumber)
	assert.Empty(t, reqs[1].PolicyNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListInspectionRequests_Pagination(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM inspection_requests ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(25, 50).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "full_name", "email", "phone", "street", "city", "state", "zip_code",
			"inspection_type", "insurance_company", "policy_number", "agency_name",
			"agent_name", "agent_phone", "agent_email", "created_at", "updated_at",
		}))

	reqs, err := s.ListInspectionRequests(context.Background(), ListFilter{Limit: 25, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, reqs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListInterestLeads(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	msg := "Interested in a demo."
	rows := pgxmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "company", "phone", "message",
		"created_at", "updated_at",
	}).
		AddRow("lead-1", "Pat", "Broker", "pat@brokerage.example",
			"Brokerage LLC", "2395550177", &msg, now, now)

	mock.ExpectQuery(`SELECT .+ FROM interest_leads ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(rows)

	leads, err := s.ListInterestLeads(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Interested in a demo.", leads[0].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS inspection_requests`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
