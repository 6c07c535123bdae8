package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

func TestPostgres_InsertLeads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			pgxmock.AnyArg(), "Sarah", "Chen", "TechVenture", "CEO",
			"25000000", "Technology", "sarah.chen@techventure.com",
			"", "", "", "", "", "Apollo", 33, "Hi Sarah...", true, "2025-06-15 09:30:00",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := NewPostgresFromPool(mock)
	n, err := s.InsertLeads(context.Background(), []model.Lead{{
		FirstName: "Sarah", LastName: "Chen", CompanyName: "TechVenture",
		Title: "CEO", Revenue: "25000000", Industry: "Technology",
		Email: " Sarah.Chen@TechVenture.com ", Source: "Apollo",
		Score: 33, OutreachEmail: "Hi Sarah...", Enriched: true,
		CreatedAt: "2025-06-15 09:30:00",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListLeads_Filters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"id", "first_name", "last_name", "company_name", "title", "revenue",
		"industry", "email", "phone", "linkedin_url", "website", "location",
		"employees", "source", "score", "email_template", "enriched", "created_date",
	}).AddRow(
		"id-1", "Lisa", "Wang", "GrowthLabs", "VP Sales", "12000000",
		"Marketing Tech", "lisa.wang@growthlabs.com", "", "", "", "",
		"", "LinkedIn", 22, "Hi Lisa...", true, "2025-06-15 09:30:00",
	)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE 1=1 AND score >= \\$1 AND industry ILIKE \\$2 ORDER BY seq").
		WithArgs(20, "%tech%").
		WillReturnRows(rows)

	s := NewPostgresFromPool(mock)
	leads, err := s.ListLeads(context.Background(), LeadFilter{MinScore: 20, Industry: "tech"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "lisa.wang@growthlabs.com", leads[0].Email)
	assert.Equal(t, 22, leads[0].Score)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetLead_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	s := NewPostgresFromPool(mock)
	_, err = s.GetLead(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteLeads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ids := []string{"id-1", "id-2"}
	mock.ExpectExec("DELETE FROM leads WHERE id = ANY").
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	s := NewPostgresFromPool(mock)
	n, err := s.DeleteLeads(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteAllLeads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM leads").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	s := NewPostgresFromPool(mock)
	require.NoError(t, s.DeleteAllLeads(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListEmails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT email FROM leads").
		WillReturnRows(pgxmock.NewRows([]string{"email"}).
			AddRow("sarah.chen@techventure.com").
			AddRow("james@localsolutions.com"))

	s := NewPostgresFromPool(mock)
	emails, err := s.ListEmails(context.Background())
	require.NoError(t, err)
	assert.Len(t, emails, 2)
	assert.True(t, emails["sarah.chen@techventure.com"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS leads").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	s := NewPostgresFromPool(mock)
	require.NoError(t, s.Migrate(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
