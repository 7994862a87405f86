package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Agents() AgentRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	PayoutProfiles() PayoutProfileRepository
	Withdrawals() WithdrawalRepository
}
