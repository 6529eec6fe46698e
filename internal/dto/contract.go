package dto

import (
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// CreateContractRequest defines the payload for creating a contract with its
// initial installment schedule. Amounts are integers in the smallest currency
// unit.
type CreateContractRequest struct {
	ClientID     string    `json:"clientID" binding:"required"`
	HomeID       string    `json:"homeID" binding:"required"`
	TotalPrice   int64     `json:"totalPrice" binding:"required,money"`
	DownPayment  int64     `json:"downPayment" binding:"money"`
	Months       int       `json:"months" binding:"required,min=1,max=480"`
	PaymentDay   int       `json:"paymentDay" binding:"required,min=1,max=31"`
	FirstDueDate time.Time `json:"firstDueDate" binding:"required"`
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ContractID       string    `json:"contractID"`
	ClientID         string    `json:"clientID"`
	HomeID           string    `json:"homeID"`
	TotalPrice       int64     `json:"totalPrice"`
	RemainingBalance int64     `json:"remainingBalance"`
	PaymentDay       int       `json:"paymentDay"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}

// ToContractResponse converts a domain.Contract to its response DTO.
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:       c.ContractID,
		ClientID:         c.ClientID,
		HomeID:           c.HomeID,
		TotalPrice:       c.TotalPrice.Units(),
		RemainingBalance: c.RemainingBalance.Units(),
		PaymentDay:       c.PaymentDay,
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
	}
}
