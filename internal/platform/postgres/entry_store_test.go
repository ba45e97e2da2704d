package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryRowColumns = []string{
	"id", "description", "month", "year", "amount", "user_id", "type", "status", "registration_date",
}

func testEntry(owner uuid.UUID) *domain.Entry {
	amount := decimal.NewFromInt(10)
	return &domain.Entry{
		Description: "Conta de Luz",
		Month:       1,
		Year:        2023,
		Amount:      &amount,
		OwnerUserID: owner,
		Type:        domain.EntryTypeExpense,
		Status:      domain.EntryStatusPending,
	}
}

func TestPostgresEntryStore_Insert(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)
	owner := uuid.New()

	mock.ExpectExec("INSERT INTO entries").
		WithArgs(sqlmock.AnyArg(), "Conta de Luz", 1, 2023, decimal.NewFromInt(10), owner,
			"EXPENSE", "PENDING", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := s.Save(context.Background(), testEntry(owner))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, domain.Today(), saved.RegistrationDate)
}

func TestPostgresEntryStore_InsertUnknownOwner(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)

	mock.ExpectExec("INSERT INTO entries").
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "entries_user_id_fkey"})

	_, err := s.Save(context.Background(), testEntry(uuid.New()))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, store.ErrOwnerNotFound)
}

func TestPostgresEntryStore_UpdateKeepsRegistrationDate(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)

	entry := testEntry(uuid.New())
	entry.ID = uuid.New()
	entry.Status = domain.EntryStatusSettled
	entry.RegistrationDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE entries").
		WithArgs("Conta de Luz", 1, 2023, decimal.NewFromInt(10), entry.OwnerUserID,
			"EXPENSE", "SETTLED", entry.ID).
		WillReturnRows(sqlmock.NewRows([]string{"registration_date"}).AddRow(stored))

	saved, err := s.Save(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, stored, saved.RegistrationDate)
	assert.Equal(t, domain.EntryStatusSettled, saved.Status)
}

func TestPostgresEntryStore_UpdateMissing(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)

	entry := testEntry(uuid.New())
	entry.ID = uuid.New()
	mock.ExpectQuery("UPDATE entries").
		WillReturnRows(sqlmock.NewRows([]string{"registration_date"}))

	_, err := s.Save(context.Background(), entry)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestPostgresEntryStore_Delete(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)
	id, missing := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM entries").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM entries").WithArgs(missing).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), id))
	assert.ErrorIs(t, s.Delete(context.Background(), missing), store.ErrEntryNotFound)
}

func TestPostgresEntryStore_GetByID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)
	id, owner := uuid.New(), uuid.New()
	date := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM entries WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(id.String(), "Conta de Luz", int64(1), int64(2023), "10.00", owner.String(),
				"EXPENSE", "PENDING", date))

	entry, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, owner, entry.OwnerUserID)
	assert.True(t, decimal.NewFromInt(10).Equal(*entry.Amount))
	assert.Equal(t, domain.EntryTypeExpense, entry.Type)
	assert.Equal(t, date, entry.RegistrationDate)
}

func TestPostgresEntryStore_GetByIDNotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)
	id := uuid.New()

	mock.ExpectQuery("FROM entries WHERE id").WithArgs(id).WillReturnRows(sqlmock.NewRows(entryRowColumns))

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestPostgresEntryStore_FindByExample(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)
	owner := uuid.New()
	status := domain.EntryStatusPending
	year := 2023

	mock.ExpectQuery(regexp.QuoteMeta("FROM entries WHERE year = $1 AND user_id = $2 AND status = $3 ORDER BY")).
		WithArgs(2023, owner, "PENDING").
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(uuid.NewString(), "Conta de Luz", int64(1), int64(2023), "10", owner.String(),
				"EXPENSE", "PENDING", time.Now()).
			AddRow(uuid.NewString(), "Salario", int64(1), int64(2023), "5000", owner.String(),
				"INCOME", "PENDING", time.Now()))

	entries, err := s.FindByExample(context.Background(), store.EntryFilter{
		Year:        &year,
		OwnerUserID: &owner,
		Status:      &status,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryTypeIncome, entries[1].Type)
}

func TestPostgresEntryStore_FindByExampleEmpty(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + entryColumns + " FROM entries ORDER BY")).
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	entries, err := s.FindByExample(context.Background(), store.EntryFilter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPostgresEntryStore_FindByExampleQueryError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresEntryStore(db, nil)

	mock.ExpectQuery("FROM entries").WillReturnError(errors.New("connection reset"))

	_, err := s.FindByExample(context.Background(), store.EntryFilter{})
	assert.Error(t, err)
}

func TestBuildEntryWhere(t *testing.T) {
	t.Parallel()

	where, args := buildEntryWhere(store.EntryFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	tmpl := testEntry(uuid.New())
	tmpl.RegistrationDate = time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	where, args = buildEntryWhere(store.EntryFilterFromTemplate(tmpl))
	assert.Equal(t,
		" WHERE description = $1 AND month = $2 AND year = $3 AND amount = $4 AND user_id = $5"+
			" AND type = $6 AND status = $7 AND registration_date = $8",
		where)
	require.Len(t, args, 8)
	assert.Equal(t, "2023-01-15", args[7])
}
