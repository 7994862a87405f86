package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyProcessed    = errors.New("already processed")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidBankDetails  = errors.New("invalid bank details")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoAgentAssigned     = errors.New("no delivery agent assigned")
	ErrProfileMissing      = errors.New("payout profile missing")
	ErrProfileUnverified   = errors.New("payout profile unverified")
	ErrRecipientCreation   = errors.New("transfer recipient creation failed")
	ErrSignatureInvalid    = errors.New("invalid webhook signature")
	ErrWithdrawalFinalized = errors.New("withdrawal already finalized")
)
