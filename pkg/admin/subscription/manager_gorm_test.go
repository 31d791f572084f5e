package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var subscriptionColumns = []string{"id", "customer_id", "plan_id", "start_date", "next_renewal", "status", "created_at", "updated_at"}
var paymentColumns = []string{"id", "subscription_id", "amount", "paid_at", "date", "idempotency_key", "created_at"}

func newMockUoW(t *testing.T) (unitofwork.UnitOfWork, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.NewGormDBFromConn(sqlDB)
	require.NoError(t, err)
	return unitofwork.NewUnitOfWork(db), mock
}

func subscriptionRow(id uuid.UUID, renewal time.Time) *sqlmock.Rows {
	created := day(2023, 12, 1)
	return sqlmock.NewRows(subscriptionColumns).
		AddRow(id.String(), uuid.NewString(), uuid.NewString(), created, renewal, "active", created, created)
}

func TestRecordPaymentGormRollsBackOnUpdateFailure(t *testing.T) {
	uow, mock := newMockUoW(t)
	subId := uuid.New()
	publisher := &fakePublisher{}
	m := NewManager(logger.NewNopLogger(), publisher)
	m.SetClock(func() time.Time { return day(2024, 1, 10) })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 1, 1)))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 1, 1)))
	mock.ExpectExec(`UPDATE "subscriptions"`).WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := m.RecordPayment(context.Background(), uow, PaymentInput{SubscriptionId: subId, Amount: amount(29)})
	require.Error(t, err)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Empty(t, publisher.types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentGormCommitsBothWrites(t *testing.T) {
	uow, mock := newMockUoW(t)
	subId := uuid.New()
	publisher := &fakePublisher{}
	m := NewManager(logger.NewNopLogger(), publisher)
	m.SetClock(func() time.Time { return day(2024, 1, 10) })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 1, 1)))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 1, 1)))
	mock.ExpectExec(`UPDATE "subscriptions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := m.RecordPayment(context.Background(), uow, PaymentInput{SubscriptionId: subId, Amount: amount(29)})
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 9), res.Subscription.NextRenewal)
	assert.Equal(t, entity.SubscriptionStatusActive, res.Subscription.Status)
	assert.Len(t, publisher.types, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentGormReplaysOnUniqueViolation(t *testing.T) {
	uow, mock := newMockUoW(t)
	subId := uuid.New()
	paymentId := uuid.New()
	key := "pay-race"
	m := NewManager(logger.NewNopLogger(), &fakePublisher{})
	m.SetClock(func() time.Time { return day(2024, 1, 10) })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(sqlmock.NewRows(paymentColumns))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 1, 1)))
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(sqlmock.NewRows(paymentColumns).
		AddRow(paymentId.String(), subId.String(), "29.00", day(2024, 1, 10), day(2024, 1, 10), key, day(2024, 1, 10)))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).WillReturnRows(subscriptionRow(subId, day(2024, 2, 9)))

	res, err := m.RecordPayment(context.Background(), uow, PaymentInput{SubscriptionId: subId, Amount: amount(29), IdempotencyKey: &key})
	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Equal(t, paymentId, res.Payment.Id)
	assert.Equal(t, day(2024, 2, 9), res.Subscription.NextRenewal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
