package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

func TestGormLineItemRepository_OneOffRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLineItemRepository(db)
	ctx := context.Background()

	period, err := billing.NewPeriod(2026, 3)
	require.NoError(t, err)
	item := &billing.CustomLineItem{
		ID:            uuid.New(),
		AccountNumber: "ACME-001",
		Name:          "Onboarding fee",
		Amount:        valueobject.NewMoneyUSD(50000),
		Recurrence:    billing.RecurrenceOneOff,
		OneOffPeriod:  &period,
	}
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.RecurrenceOneOff, found.Recurrence)
	require.NotNil(t, found.OneOffPeriod)
	assert.Equal(t, 2026, found.OneOffPeriod.Year)
	assert.Equal(t, time.March, found.OneOffPeriod.Month)
	assert.Nil(t, found.ActiveFrom)
	assert.Nil(t, found.ActiveUntil)
	assert.Equal(t, int64(50000), found.Amount.MinorUnits())
}

func TestGormLineItemRepository_MonthlyWindowRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLineItemRepository(db)
	ctx := context.Background()

	from, err := billing.NewPeriod(2026, 1)
	require.NoError(t, err)
	item := &billing.CustomLineItem{
		ID:            uuid.New(),
		AccountNumber: "ACME-001",
		Name:          "Colo rack",
		Amount:        valueobject.NewMoneyUSD(20000),
		Recurrence:    billing.RecurrenceMonthly,
		ActiveFrom:    &from,
	}
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ActiveFrom)
	assert.Equal(t, 2026, found.ActiveFrom.Year)
	// Open-ended window stays open-ended
	assert.Nil(t, found.ActiveUntil)
	assert.Nil(t, found.OneOffPeriod)
}

func TestGormLineItemRepository_FindByAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLineItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &billing.CustomLineItem{
		ID: uuid.New(), AccountNumber: "ACME-001", Name: "DNS hosting",
		Amount: valueobject.NewMoneyUSD(1200), Recurrence: billing.RecurrenceYearly,
		YearlyBillMonth: time.June,
	}))
	require.NoError(t, repo.Save(ctx, &billing.CustomLineItem{
		ID: uuid.New(), AccountNumber: "GLOBX-002", Name: "SSL cert",
		Amount: valueobject.NewMoneyUSD(9900), Recurrence: billing.RecurrenceYearly,
		YearlyBillMonth: time.January,
	}))

	items, err := repo.FindByAccount(ctx, "ACME-001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "DNS hosting", items[0].Name)
	assert.Equal(t, time.June, items[0].YearlyBillMonth)
}

func TestGormLineItemRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLineItemRepository(db)
	ctx := context.Background()

	item := &billing.CustomLineItem{
		ID: uuid.New(), AccountNumber: "ACME-001", Name: "One time credit",
		Amount: valueobject.NewMoneyUSD(-5000), Recurrence: billing.RecurrenceMonthly,
	}
	require.NoError(t, repo.Save(ctx, item))
	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), shared.ErrNotFound)
}
