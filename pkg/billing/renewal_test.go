package billing

import (
	"testing"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name        string
		status      entity.SubscriptionStatus
		nextRenewal time.Time
		now         time.Time
		want        time.Time
	}{
		{
			name:        "expired renewal renews from now",
			status:      entity.SubscriptionStatusActive,
			nextRenewal: day(2024, time.January, 1),
			now:         day(2024, time.January, 10),
			want:        day(2024, time.February, 9),
		},
		{
			name:        "current period is extended",
			status:      entity.SubscriptionStatusActive,
			nextRenewal: day(2024, time.March, 1),
			now:         day(2024, time.February, 15),
			want:        day(2024, time.March, 31),
		},
		{
			name:        "overdue renews from now",
			status:      entity.SubscriptionStatusOverdue,
			nextRenewal: day(2023, time.December, 20),
			now:         day(2024, time.January, 5),
			want:        day(2024, time.February, 4),
		},
		{
			name:        "leap day is crossed by calendar arithmetic",
			status:      entity.SubscriptionStatusActive,
			nextRenewal: day(2024, time.February, 15),
			now:         day(2024, time.February, 1),
			want:        day(2024, time.March, 16),
		},
		{
			name:        "year boundary",
			status:      entity.SubscriptionStatusActive,
			nextRenewal: day(2023, time.December, 15),
			now:         day(2023, time.December, 1),
			want:        day(2024, time.January, 14),
		},
		{
			name:        "renewal equal to now counts as not expired",
			status:      entity.SubscriptionStatusActive,
			nextRenewal: day(2024, time.May, 1),
			now:         day(2024, time.May, 1),
			want:        day(2024, time.May, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := entity.Subscription{Id: uuid.New(), Status: tt.status, NextRenewal: tt.nextRenewal}

			res, err := ApplyPayment(sub, tt.now, PaymentOptions{})
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(res.Subscription.NextRenewal), "got %s want %s", res.Subscription.NextRenewal, tt.want)
			assert.Equal(t, entity.SubscriptionStatusActive, res.Subscription.Status)
			assert.Equal(t, tt.status, res.PreviousStatus)
			assert.Equal(t, tt.nextRenewal, res.PreviousRenewal)
			assert.False(t, res.Reactivated)
		})
	}
}

func TestApplyPaymentCancelled(t *testing.T) {
	now := day(2024, time.January, 10)
	sub := entity.Subscription{Id: uuid.New(), Status: entity.SubscriptionStatusCancelled, NextRenewal: day(2023, time.August, 1)}

	_, err := ApplyPayment(sub, now, PaymentOptions{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	res, err := ApplyPayment(sub, now, PaymentOptions{Reactivate: true})
	require.NoError(t, err)
	assert.True(t, res.Reactivated)
	assert.Equal(t, entity.SubscriptionStatusActive, res.Subscription.Status)
	assert.True(t, day(2024, time.February, 9).Equal(res.Subscription.NextRenewal))
}

func TestApplyPaymentRejectsUnknownStatus(t *testing.T) {
	sub := entity.Subscription{Status: "paused"}
	_, err := ApplyPayment(sub, time.Now(), PaymentOptions{})
	assert.True(t, apperror.IsValidation(err))
}

func TestInitialRenewal(t *testing.T) {
	assert.True(t, day(2024, time.January, 31).Equal(InitialRenewal(day(2024, time.January, 1))))
	assert.True(t, day(2024, time.March, 1).Equal(InitialRenewal(day(2024, time.January, 31))))
	assert.True(t, day(2023, time.March, 2).Equal(InitialRenewal(day(2023, time.January, 31))))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("start_date", "2024-02-29")
	require.NoError(t, err)
	assert.True(t, day(2024, time.February, 29).Equal(got))

	got, err = ParseDate("paid_at", "2024-01-10T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())

	_, err = ParseDate("paid_at", "10/01/2024")
	assert.True(t, apperror.IsValidation(err))
}

func TestCalendarDay(t *testing.T) {
	got := CalendarDay(time.Date(2024, time.January, 10, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, day(2024, time.January, 10), got)
}
