package domain

// ContractStatus indicates the lifecycle state of an installment contract.
type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractPaid      ContractStatus = "PAID"
	ContractCompleted ContractStatus = "COMPLETED"
	ContractCancelled ContractStatus = "CANCELLED"
)

// IsTerminal reports whether the status blocks further payment acceptance.
func (s ContractStatus) IsTerminal() bool {
	return s == ContractPaid || s == ContractCompleted || s == ContractCancelled
}

// Contract is an installment sale agreement: a fixed total price split into a
// down payment (month 0) plus N monthly installments.
type Contract struct {
	ContractID       string         `json:"contractID"`       // Primary key (UUID)
	ClientID         string         `json:"clientID"`         // FK -> clients, managed by a collaborator
	HomeID           string         `json:"homeID"`           // FK -> homes, managed by a collaborator
	TotalPrice       Money          `json:"totalPrice"`       // Immutable after creation
	RemainingBalance Money          `json:"remainingBalance"` // Derived: totalPrice - sum(amountPaid); written only by ProjectAggregate
	PaymentDay       int            `json:"paymentDay"`       // Day of month installments fall due (1-31)
	Status           ContractStatus `json:"status"`
	AuditFields
}
