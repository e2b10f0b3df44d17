package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	periodRepo    portsrepo.PeriodRepositoryFacade
}

// NewReportingService creates the derived-balance reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, periodRepo: periodRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance aggregates posted journal lines per account. A correct ledger
// always reports equal debit and credit totals.
func (s *reportingService) TrialBalance(ctx context.Context, orgID, periodID string) (*dto.TrialBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.TrialBalance(ctx, orgID, periodID)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.TotalDebit)
		totalCredit = totalCredit.Add(row.TotalCredit)
	}

	return &dto.TrialBalanceResponse{
		PeriodID:    periodID,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}
