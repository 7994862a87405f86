package dto

// BankVerifyRequest describes bank details to verify for payouts.
type BankVerifyRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

// BankVerifyResponse confirms a verified payout destination.
type BankVerifyResponse struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	AccountName   string `json:"account_name"`
	Verified      bool   `json:"verified"`
}
