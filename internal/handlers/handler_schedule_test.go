package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/core/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, contractID string) ([]domain.Installment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockScheduleService) UpdateSchedule(ctx context.Context, contractID string, req dto.UpdateScheduleRequest, userID string) ([]domain.Installment, []domain.RedistributionResult, error) {
	args := m.Called(ctx, contractID, req, userID)
	var installments []domain.Installment
	if args.Get(0) != nil {
		installments = args.Get(0).([]domain.Installment)
	}
	var results []domain.RedistributionResult
	if args.Get(1) != nil {
		results = args.Get(1).([]domain.RedistributionResult)
	}
	return installments, results, args.Error(2)
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

// --- Test Suite ---
type ScheduleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockScheduleSvc *MockScheduleService
	contractID      string
}

func (suite *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())

	suite.mockScheduleSvc = new(MockScheduleService)
	suite.contractID = uuid.NewString()

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Schedule: suite.mockScheduleSvc,
	})
}

func testInstallments(contractID string) []domain.Installment {
	due := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	return []domain.Installment{
		{InstallmentID: uuid.NewString(), ContractID: contractID, MonthNumber: 0, Amount: domain.NewMoney(20_000_000), AmountPaid: domain.NewMoney(20_000_000), DueDate: due},
		{InstallmentID: uuid.NewString(), ContractID: contractID, MonthNumber: 1, Amount: domain.NewMoney(80_000_000), DueDate: due.AddDate(0, 1, 0)},
	}
}

func (suite *ScheduleHandlerTestSuite) TestGetSchedule() {
	suite.mockScheduleSvc.On("GetSchedule", mock.Anything, suite.contractID).Return(testInstallments(suite.contractID), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/contracts/%s/schedule", suite.contractID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Installments []dto.InstallmentResponse `json:"installments"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Installments, 2)
	suite.True(resp.Installments[0].Protected)
	suite.Equal(int64(0), resp.Installments[0].Remaining)
	suite.Equal(int64(80_000_000), resp.Installments[1].Remaining)
}

func (suite *ScheduleHandlerTestSuite) TestUpdateSchedule_ReturnsWarnings() {
	installmentID := uuid.NewString()
	body := dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{{InstallmentID: installmentID, Amount: 500_000_000}},
	}
	results := []domain.RedistributionResult{
		{MonthNumber: 1, RequestedAmount: domain.NewMoney(500_000_000), AppliedAmount: domain.NewMoney(80_000_000), Clamped: true},
	}
	suite.mockScheduleSvc.On("UpdateSchedule", mock.Anything, suite.contractID, body, "admin-3").Return(testInstallments(suite.contractID), results, nil).Once()

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/contracts/%s/schedule", suite.contractID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "admin-3")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateScheduleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Warnings, 1)
	suite.Equal(int64(500_000_000), resp.Warnings[0].RequestedAmount)
	suite.Equal(int64(80_000_000), resp.Warnings[0].AppliedAmount)
	suite.mockScheduleSvc.AssertExpectations(suite.T())
}

func (suite *ScheduleHandlerTestSuite) TestUpdateSchedule_UnbalancedIsBadRequest() {
	body := dto.UpdateScheduleRequest{
		Changes: []dto.ScheduleChange{{InstallmentID: uuid.NewString(), Amount: 20_000_000}},
	}
	suite.mockScheduleSvc.On("UpdateSchedule", mock.Anything, suite.contractID, body, "system").
		Return(nil, nil, fmt.Errorf("monthly sum mismatch: %w", services.ErrScheduleUnbalanced)).Once()

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/contracts/%s/schedule", suite.contractID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ScheduleHandlerTestSuite) TestUpdateSchedule_EmptyChangesRejected() {
	payload, _ := json.Marshal(dto.UpdateScheduleRequest{})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/contracts/%s/schedule", suite.contractID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockScheduleSvc.AssertNotCalled(suite.T(), "UpdateSchedule")
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}
