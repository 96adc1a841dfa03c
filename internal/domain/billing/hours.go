package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// HoursBreakdown explains how the period's ticket hours were charged
type HoursBreakdown struct {
	TotalHours      decimal.Decimal   `json:"total_hours"`
	MonthlyPool     decimal.Decimal   `json:"monthly_pool"`
	YearlyPool      decimal.Decimal   `json:"yearly_pool"`
	RemainingYearly decimal.Decimal   `json:"remaining_yearly"`
	CoveredHours    decimal.Decimal   `json:"covered_hours"`
	BillableHours   decimal.Decimal   `json:"billable_hours"`
	HourlyRate      valueobject.Money `json:"hourly_rate"`
	Amount          valueobject.Money `json:"amount"`
	Tickets         []TicketRecord    `json:"tickets"`
}

// ComputeTicketHours prices the period's ticket hours against the client's
// prepaid pools. Only tickets whose last activity falls inside the period's
// UTC window count. The monthly pool absorbs hours first; the yearly pool
// covers the remainder, reduced by whatever the client already drew from it
// earlier in the calendar year. Pools never produce credits.
func ComputeTicketHours(period Period, tickets []TicketRecord, usedEarlierInYear decimal.Decimal, rates *EffectiveRates) (*HoursBreakdown, error) {
	total := decimal.Zero
	inPeriod := make([]TicketRecord, 0, len(tickets))
	for _, t := range tickets {
		if t.Hours.IsNegative() {
			return nil, shared.NewValidationError(fmt.Sprintf("Ticket %s has negative hours", t.Number))
		}
		if !period.Contains(t.LastActivityAt) {
			continue
		}
		inPeriod = append(inPeriod, t)
		total = total.Add(t.Hours)
	}

	monthly := rates.PrepaidHoursMonthly()
	yearly := rates.PrepaidHoursYearly()

	remainingYearly := yearly.Sub(usedEarlierInYear)
	if remainingYearly.IsNegative() {
		remainingYearly = decimal.Zero
	}

	billable := total.Sub(monthly).Sub(remainingYearly)
	if billable.IsNegative() {
		billable = decimal.Zero
	}

	breakdown := &HoursBreakdown{
		TotalHours:      total,
		MonthlyPool:     monthly,
		YearlyPool:      yearly,
		RemainingYearly: remainingYearly,
		CoveredHours:    total.Sub(billable),
		BillableHours:   billable,
		HourlyRate:      valueobject.ZeroUSD(),
		Amount:          valueobject.ZeroUSD(),
		Tickets:         inPeriod,
	}

	if billable.IsZero() {
		// No billable hours means the hourly rate is never consulted, so a
		// client with no rate configured still invoices cleanly.
		return breakdown, nil
	}

	rate, err := rates.HourlyTicketRate()
	if err != nil {
		return nil, err
	}
	breakdown.HourlyRate = rate
	breakdown.Amount = rate.MultiplyDecimal(billable)
	return breakdown, nil
}
