package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.PeriodSvcFacade

	orgID   string
	actorID string
	january domain.AccountingPeriod
}

func (s *PeriodServiceTestSuite) SetupTest() {
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.service = services.NewPeriodService(s.mockPeriodRepo)

	s.orgID = uuid.NewString()
	s.actorID = uuid.NewString()
	s.january = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		OrgID:     s.orgID,
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "2026-02",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	s.mockPeriodRepo.On("ListPeriods", ctx, s.orgID).Return([]domain.AccountingPeriod{s.january}, nil).Once()
	s.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.AccountingPeriod")).Return(nil).Once()

	period, err := s.service.CreatePeriod(ctx, s.orgID, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(period)
	s.NotEmpty(period.PeriodID)
	s.Equal(domain.PeriodOpen, period.Status)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStartRefused() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "backwards",
		StartDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := s.service.CreatePeriod(ctx, s.orgID, req, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCreatePeriod_OverlapRefused() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "overlapping",
		StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}

	s.mockPeriodRepo.On("ListPeriods", ctx, s.orgID).Return([]domain.AccountingPeriod{s.january}, nil).Once()

	_, err := s.service.CreatePeriod(ctx, s.orgID, req, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrDuplicate))
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestIsOpen() {
	ctx := context.Background()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.january.PeriodID).Return(&s.january, nil).Once()

	open, err := s.service.IsOpen(ctx, s.orgID, s.january.PeriodID)

	s.Require().NoError(err)
	s.True(open)
}

func (s *PeriodServiceTestSuite) TestClosePeriod_RefusalPropagates() {
	ctx := context.Background()
	refused := apperrors.NewAppError(409, "period has journals in flight", apperrors.ErrPeriodClose)
	s.mockPeriodRepo.On("ClosePeriod", ctx, s.orgID, s.january.PeriodID, s.actorID, mock.AnythingOfType("time.Time")).Return(refused).Once()

	err := s.service.ClosePeriod(ctx, s.orgID, s.january.PeriodID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrPeriodClose))
}

func (s *PeriodServiceTestSuite) TestReopenPeriod_Delegates() {
	ctx := context.Background()
	s.mockPeriodRepo.On("ReopenPeriod", ctx, s.orgID, s.january.PeriodID, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.ReopenPeriod(ctx, s.orgID, s.january.PeriodID, s.actorID)

	s.Require().NoError(err)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
