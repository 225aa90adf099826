package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

func newInvoiceService(t *testing.T) (*InvoiceService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInvoiceService(repository.NewInvoiceRepo(db), repository.NewRoomRepo(db), 14), mock
}

func invoiceRow(id, bookingID, userID uint64, amount uint32, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "booking_id", "user_id", "amount_cents", "status", "created_at", "due_date"}).
		AddRow(id, bookingID, userID, amount, status, now, now.AddDate(0, 0, 14))
}

func TestMarkPaidRequiresAdmin(t *testing.T) {
	svc, _ := newInvoiceService(t)
	user := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	_, err := svc.MarkPaid(context.Background(), user, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestMarkPaidIsNotIdempotent(t *testing.T) {
	svc, mock := newInvoiceService(t)
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdministrator}

	markPaid := regexp.QuoteMeta("UPDATE invoices SET status='Paid' WHERE id=? AND status='Unpaid'")

	mock.ExpectExec(markPaid).WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices WHERE id = ?")).
		WithArgs(uint64(11)).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoicePaid))

	inv, err := svc.MarkPaid(context.Background(), admin, 11)
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, inv.Status)

	// Second call matches zero rows: the invoice is no longer Unpaid.
	mock.ExpectExec(markPaid).WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = svc.MarkPaid(context.Background(), admin, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceGetOwnershipRules(t *testing.T) {
	svc, mock := newInvoiceService(t)

	sel := regexp.QuoteMeta("SELECT " + invoiceSelectCols + " FROM invoices WHERE id = ?")

	// Owner reads their own invoice.
	mock.ExpectQuery(sel).WithArgs(uint64(11)).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	owner := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}
	inv, err := svc.GetByID(context.Background(), owner, 11)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), inv.UserID)

	// A different user is refused, and the refusal is not disguised as
	// a missing invoice.
	mock.ExpectQuery(sel).WithArgs(uint64(11)).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	stranger := auth.Identity{UserID: 99, Role: auth.RoleRegisteredUser}
	_, err = svc.GetByID(context.Background(), stranger, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))

	// An administrator reads anyone's invoice.
	mock.ExpectQuery(sel).WithArgs(uint64(11)).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdministrator}
	_, err = svc.GetByID(context.Background(), admin, 11)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnpaidIsAdministrative(t *testing.T) {
	svc, mock := newInvoiceService(t)

	user := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}
	_, err := svc.ListUnpaid(context.Background(), user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices WHERE status='Unpaid'")).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdministrator}
	got, err := svc.ListUnpaid(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.InvoiceUnpaid, got[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForCallerScopesByRole(t *testing.T) {
	svc, mock := newInvoiceService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices WHERE user_id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	user := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}
	got, err := svc.ListForCaller(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, got, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices ORDER BY created_at DESC")).
		WillReturnRows(invoiceRow(11, 7, 42, 2500, model.InvoiceUnpaid))
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdministrator}
	_, err = svc.ListForCaller(context.Background(), admin)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
