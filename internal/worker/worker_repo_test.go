package worker_test

import (
	"context"
	"testing"

	"go-bossboard/internal/shared/testutil"
	"go-bossboard/internal/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindActiveByCompany_JoinsThroughDepartments(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := worker.NewRepository(db)
	companyID := uuid.NewString()
	workerID := uuid.New()
	deptID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "department_id", "name", "surname", "salary", "wallet_address", "is_active"}).
		AddRow(workerID.String(), deptID.String(), "Ada", "Lovelace", "250.75", validAddress, true)

	mock.ExpectQuery(`SELECT \* FROM "workers" WHERE department_id IN \(SELECT id FROM "departments" WHERE company_id = .+\) AND is_active = .+ ORDER BY created_at ASC`).
		WithArgs(companyID, true).
		WillReturnRows(rows)

	workers, err := repo.FindActiveByCompany(context.Background(), companyID)

	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, workerID, workers[0].ID)
	assert.True(t, decimal.RequireFromString("250.75").Equal(workers[0].Salary))
	assert.NoError(t, mock.ExpectationsWereMet())
}
