package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// PlanService provides application-level billing plan operations
type PlanService struct {
	plans     billing.PlanRepository
	overrides billing.OverrideRepository
	companies inventory.CompanyRepository
}

// NewPlanService creates a new PlanService
func NewPlanService(plans billing.PlanRepository, overrides billing.OverrideRepository, companies inventory.CompanyRepository) *PlanService {
	return &PlanService{plans: plans, overrides: overrides, companies: companies}
}

// RateCardRequest carries plan rates as major-unit decimal amounts
type RateCardRequest struct {
	PerUser                  decimal.Decimal `json:"per_user" binding:"required"`
	PerWorkstation           decimal.Decimal `json:"per_workstation" binding:"required"`
	PerServer                decimal.Decimal `json:"per_server" binding:"required"`
	PerVM                    decimal.Decimal `json:"per_vm" binding:"required"`
	PerSwitch                decimal.Decimal `json:"per_switch" binding:"required"`
	PerFirewall              decimal.Decimal `json:"per_firewall" binding:"required"`
	HourlyTicketRate         decimal.Decimal `json:"hourly_ticket_rate" binding:"required"`
	BackupBaseFeeWorkstation decimal.Decimal `json:"backup_base_fee_workstation"`
	BackupBaseFeeServer      decimal.Decimal `json:"backup_base_fee_server"`
	BackupIncludedTB         decimal.Decimal `json:"backup_included_tb" binding:"required"`
	BackupPerTBFee           decimal.Decimal `json:"backup_per_tb_fee"`
}

// PlanRequest represents a request to create or update a billing plan
type PlanRequest struct {
	Name         string          `json:"name" binding:"required"`
	Term         string          `json:"term" binding:"required,contract_term"`
	SupportLevel string          `json:"support_level"`
	Rates        RateCardRequest `json:"rates" binding:"required"`
}

// PlanResponse represents a billing plan in API responses
type PlanResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Term         string           `json:"term"`
	SupportLevel string           `json:"support_level"`
	Rates        billing.RateCard `json:"rates"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toRateCard(req RateCardRequest) (billing.RateCard, error) {
	toMoney := func(d decimal.Decimal) (valueobject.Money, error) {
		return valueobject.NewMoneyFromDecimal(d, valueobject.DefaultCurrency)
	}
	var rc billing.RateCard
	var err error
	if rc.PerUserRate, err = toMoney(req.PerUser); err != nil {
		return rc, err
	}
	if rc.PerWorkstationRate, err = toMoney(req.PerWorkstation); err != nil {
		return rc, err
	}
	if rc.PerServerRate, err = toMoney(req.PerServer); err != nil {
		return rc, err
	}
	if rc.PerVMRate, err = toMoney(req.PerVM); err != nil {
		return rc, err
	}
	if rc.PerSwitchRate, err = toMoney(req.PerSwitch); err != nil {
		return rc, err
	}
	if rc.PerFirewallRate, err = toMoney(req.PerFirewall); err != nil {
		return rc, err
	}
	if rc.HourlyTicketRate, err = toMoney(req.HourlyTicketRate); err != nil {
		return rc, err
	}
	if rc.BackupBaseFeeWorkstation, err = toMoney(req.BackupBaseFeeWorkstation); err != nil {
		return rc, err
	}
	if rc.BackupBaseFeeServer, err = toMoney(req.BackupBaseFeeServer); err != nil {
		return rc, err
	}
	if rc.BackupPerTBFee, err = toMoney(req.BackupPerTBFee); err != nil {
		return rc, err
	}
	rc.BackupIncludedTB = req.BackupIncludedTB
	return rc, nil
}

func toPlanResponse(plan *billing.BillingPlan) *PlanResponse {
	return &PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		Term:         plan.Term.String(),
		SupportLevel: plan.SupportLevel,
		Rates:        plan.Rates,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// Create creates a new billing plan
func (s *PlanService) Create(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	term, ok := billing.ParseContractTerm(req.Term)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown contract term %q", req.Term))
	}
	rates, err := toRateCard(req.Rates)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	if existing, err := s.plans.FindByName(ctx, req.Name); err == nil && existing != nil && existing.Term == term {
		return nil, shared.ErrAlreadyExists
	}

	plan, err := billing.NewBillingPlan(req.Name, term, req.SupportLevel, rates)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Update replaces a plan's rates and metadata
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req PlanRequest) (*PlanResponse, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	term, ok := billing.ParseContractTerm(req.Term)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown contract term %q", req.Term))
	}
	rates, err := toRateCard(req.Rates)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	if rates.BackupIncludedTB.Sign() <= 0 {
		return nil, shared.NewValidationError("Backup included TB must be positive")
	}

	plan.Name = req.Name
	plan.Term = term
	plan.SupportLevel = req.SupportLevel
	plan.Rates = rates
	plan.UpdatedAt = time.Now()

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Get returns one plan
func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// List returns all plans
func (s *PlanService) List(ctx context.Context) ([]*PlanResponse, error) {
	plans, err := s.plans.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]*PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, toPlanResponse(&plans[i]))
	}
	return responses, nil
}

// Delete removes a plan. Deletion is refused while any company or client
// override still resolves to the plan.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return err
	}

	companyRefs, err := s.companies.CountByPlanName(ctx, plan.Name)
	if err != nil {
		return err
	}
	overrideRefs, err := s.overrides.CountByPlanName(ctx, plan.Name)
	if err != nil {
		return err
	}
	if companyRefs > 0 || overrideRefs > 0 {
		return shared.ErrPlanInUse
	}
	return s.plans.Delete(ctx, id)
}
