package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates a negative or otherwise malformed money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrProtectedInstallment indicates an attempt to shrink the scheduled amount
// of an installment that already has money paid against it.
var ErrProtectedInstallment = errors.New("installment is protected by recorded payments")

// ErrOverpayment indicates a payment larger than the remaining balance of its target.
var ErrOverpayment = errors.New("payment exceeds remaining balance")

// ErrContractBusy indicates the per-contract lock could not be acquired in time.
// The caller may retry the request.
var ErrContractBusy = errors.New("contract is busy, retry later")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
