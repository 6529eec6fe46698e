package domain

// ProjectAggregate recomputes the contract-level fields derived from
// installment state. It is the single writer of RemainingBalance and of the
// PAID transition, and runs as the last step of every schedule mutation
// inside the same lock scope.
//
// PAID is a derived status: it is entered when an active contract's balance
// reaches zero and left again when a correction reopens the balance, so a
// reset payment never strands the contract in a state that refuses the
// re-payment. CANCELLED and the externally-set COMPLETED are never changed
// here.
func ProjectAggregate(c *Contract, s *Schedule) {
	c.RemainingBalance = c.TotalPrice.Sub(s.TotalPaid())
	switch {
	case c.Status == ContractActive && !c.RemainingBalance.IsPositive():
		c.Status = ContractPaid
	case c.Status == ContractPaid && c.RemainingBalance.IsPositive():
		c.Status = ContractActive
	}
}
