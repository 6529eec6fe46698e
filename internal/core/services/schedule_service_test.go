package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aqsaty/installment_app/internal/apperrors"
	"github.com/aqsaty/installment_app/internal/core/domain"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/core/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockRepo *MockContractRepository
	service  portssvc.ScheduleSvcFacade

	savedContract     domain.Contract
	savedInstallments []domain.Installment
	saveCalls         int
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockContractRepository)
	suite.service = services.NewServiceContainer(suite.mockRepo, time.Second).Schedule
	suite.saveCalls = 0
	suite.mockRepo.SaveScheduleMutationFn = func(_ context.Context, contract domain.Contract, installments []domain.Installment, _ map[string][]domain.LedgerEntry, _ *domain.Transaction) error {
		suite.savedContract = contract
		suite.savedInstallments = installments
		suite.saveCalls++
		return nil
	}
}

func (suite *ScheduleServiceTestSuite) expectLoad(contract *domain.Contract, schedule *domain.Schedule) {
	ctx := context.Background()
	suite.mockRepo.On("FindContractByID", ctx, testContractID).Return(contract, nil).Once()
	suite.mockRepo.On("FindScheduleByContractID", ctx, testContractID).Return(schedule, nil).Once()
}

func (suite *ScheduleServiceTestSuite) amountsByMonth() map[int]int64 {
	out := map[int]int64{}
	for _, inst := range suite.savedInstallments {
		out[inst.MonthNumber] = inst.Amount.Units()
	}
	return out
}

func (suite *ScheduleServiceTestSuite) TestGetSchedule() {
	ctx := context.Background()
	suite.mockRepo.On("FindScheduleByContractID", ctx, testContractID).Return(newTestSchedule(suite.T()), nil).Once()

	installments, err := suite.service.GetSchedule(ctx, testContractID)

	suite.Require().NoError(err)
	suite.Require().Len(installments, 4)
	suite.Equal(0, installments[0].MonthNumber)
	suite.Equal(3, installments[3].MonthNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_RedistributesLaterMonths() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T()))

	installments, warnings, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(1), Amount: 30_000_000},
		},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Empty(warningsClamped(warnings))
	suite.Require().Len(installments, 4)

	suite.Equal(1, suite.saveCalls)
	got := suite.amountsByMonth()
	suite.Equal(int64(30_000_000), got[1])
	suite.Equal(int64(25_000_000), got[2])
	suite.Equal(int64(25_000_000), got[3])
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_AppliesChangesInMonthOrder() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T()))

	// Changes arrive month 2 first; month 1 must still be applied first so
	// its redistribution is visible when month 2 is edited.
	_, _, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(2), Amount: 20_000_000},
			{InstallmentID: instID(1), Amount: 30_000_000},
		},
	}, testUserID)

	suite.Require().NoError(err)
	got := suite.amountsByMonth()
	suite.Equal(int64(30_000_000), got[1])
	suite.Equal(int64(20_000_000), got[2])
	suite.Equal(int64(30_000_000), got[3])
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_ReportsClampWarnings() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T()))

	_, warnings, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(1), Amount: 500_000_000},
		},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(warnings, 1)
	suite.True(warnings[0].Clamped)
	suite.Equal(int64(80_000_000), warnings[0].AppliedAmount.Units())

	got := suite.amountsByMonth()
	suite.Equal(int64(80_000_000), got[1])
	suite.Equal(int64(0), got[2])
	suite.Equal(int64(0), got[3])
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_RejectsUnbalancedResult() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T()))

	// Shrinking the last month leaves nothing to absorb the difference, so
	// the draft cannot converge to the contract target.
	_, _, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(3), Amount: 20_000_000},
		},
	}, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrScheduleUnbalanced)
	suite.Equal(0, suite.saveCalls)
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_ProtectedInstallment() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T(),
		[3]int64{0, 20_000_000, 0},
		[3]int64{1, 26_666_667, 100},
		[3]int64{2, 53_333_333, 0},
	))

	_, _, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(1), Amount: 30_000_000},
		},
	}, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtectedInstallment)
	suite.Equal(0, suite.saveCalls)
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_ValidationBeforeLoad() {
	ctx := context.Background()

	_, _, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(1), Amount: -1},
		},
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, _, err = suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(1), Amount: 10},
			{InstallmentID: instID(1), Amount: 20},
		},
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// Neither request should have touched the repository.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindContractByID")
	suite.mockRepo.AssertNotCalled(suite.T(), "FindScheduleByContractID")
}

func (suite *ScheduleServiceTestSuite) TestUpdateSchedule_MovesDueDate() {
	ctx := context.Background()
	suite.expectLoad(newTestContract(), newTestSchedule(suite.T()))
	newDue := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)

	installments, _, err := suite.service.UpdateSchedule(ctx, testContractID, dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{
			{InstallmentID: instID(2), Amount: 26_666_667, DueDate: &newDue},
		},
	}, testUserID)

	suite.Require().NoError(err)
	for _, inst := range installments {
		if inst.MonthNumber == 2 {
			suite.Equal(newDue, inst.DueDate)
		}
	}
}

// warningsClamped filters redistribution results down to the clamped ones.
func warningsClamped(results []domain.RedistributionResult) []domain.RedistributionResult {
	var out []domain.RedistributionResult
	for _, r := range results {
		if r.Clamped {
			out = append(out, r)
		}
	}
	return out
}

func TestScheduleServiceSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
