package domain_test

import (
	"testing"

	"github.com/aqsaty/installment_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestProjectAggregate(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.ContractStatus
		paid          [][3]int64
		wantRemaining int64
		wantStatus    domain.ContractStatus
	}{
		{
			name:          "partial payment updates remaining",
			status:        domain.ContractActive,
			paid:          [][3]int64{{0, 20_000_000, 20_000_000}, {1, 80_000_000, 0}},
			wantRemaining: 80_000_000,
			wantStatus:    domain.ContractActive,
		},
		{
			name:          "fully paid flips active to paid",
			status:        domain.ContractActive,
			paid:          [][3]int64{{0, 20_000_000, 20_000_000}, {1, 80_000_000, 80_000_000}},
			wantRemaining: 0,
			wantStatus:    domain.ContractPaid,
		},
		{
			name:          "correction reopening the balance reverts paid to active",
			status:        domain.ContractPaid,
			paid:          [][3]int64{{0, 20_000_000, 20_000_000}, {1, 80_000_000, 0}},
			wantRemaining: 80_000_000,
			wantStatus:    domain.ContractActive,
		},
		{
			name:          "cancelled stays cancelled even when paid off",
			status:        domain.ContractCancelled,
			paid:          [][3]int64{{0, 100_000_000, 100_000_000}},
			wantRemaining: 0,
			wantStatus:    domain.ContractCancelled,
		},
		{
			name:          "completed stays completed",
			status:        domain.ContractCompleted,
			paid:          [][3]int64{{0, 100_000_000, 100_000_000}},
			wantRemaining: 0,
			wantStatus:    domain.ContractCompleted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildSchedule(t, tt.paid...)
			c := &domain.Contract{
				ContractID: "contract-1",
				TotalPrice: domain.NewMoney(100_000_000),
				Status:     tt.status,
			}
			domain.ProjectAggregate(c, s)
			assert.Equal(t, tt.wantRemaining, c.RemainingBalance.Units())
			assert.Equal(t, tt.wantStatus, c.Status)
		})
	}
}

func TestContractStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.ContractActive.IsTerminal())
	assert.True(t, domain.ContractPaid.IsTerminal())
	assert.True(t, domain.ContractCompleted.IsTerminal())
	assert.True(t, domain.ContractCancelled.IsTerminal())
}
