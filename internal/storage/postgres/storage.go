package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// pgxPool abstracts the pgxpool surface the storage needs, so tests can
// substitute pgxmock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type agentRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type payoutProfileRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Agents() repository.AgentRepository {
	return &agentRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) PayoutProfiles() repository.PayoutProfileRepository {
	return &payoutProfileRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS agents (
            id SERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            total NUMERIC(20,2) NOT NULL,
            seller_id BIGINT NOT NULL,
            seller_type TEXT NOT NULL,
            delivery_agent_id BIGINT REFERENCES agents(id),
            payment_status TEXT NOT NULL DEFAULT 'pending',
            split_details JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            agent_id BIGINT NOT NULL REFERENCES agents(id),
            wallet_type TEXT NOT NULL,
            balance NUMERIC(20,2) NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (agent_id, wallet_type)
        )`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
            id SERIAL PRIMARY KEY,
            agent_id BIGINT NOT NULL REFERENCES agents(id),
            wallet_type TEXT NOT NULL,
            transaction_type TEXT NOT NULL,
            amount NUMERIC(20,2) NOT NULL,
            balance_before NUMERIC(20,2) NOT NULL,
            balance_after NUMERIC(20,2) NOT NULL,
            reference_type TEXT NOT NULL,
            reference_id TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payout_profiles (
            user_id BIGINT PRIMARY KEY,
            account_number TEXT NOT NULL,
            bank_code TEXT NOT NULL,
            account_name TEXT NOT NULL,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            recipient_code TEXT,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            id SERIAL PRIMARY KEY,
            agent_id BIGINT NOT NULL REFERENCES agents(id),
            amount NUMERIC(20,2) NOT NULL,
            type TEXT NOT NULL DEFAULT 'earnings',
            status TEXT NOT NULL DEFAULT 'pending',
            reference TEXT UNIQUE NOT NULL,
            transfer_code TEXT,
            error_message TEXT,
            admin_notes TEXT,
            approved_by BIGINT,
            approved_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            processed_at TIMESTAMPTZ
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_tx_reference
            ON wallet_transactions(reference_type, reference_id, wallet_type, transaction_type)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_tx_agent ON wallet_transactions(agent_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_agent ON withdrawals(agent_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_transfer_code ON withdrawals(transfer_code)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AgentRepository implementation ---

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	const query = `SELECT id, user_id, name, phone, active, created_at FROM agents WHERE id=$1`
	var a model.Agent
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Active, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	const query = `SELECT id, reference, total, seller_id, seller_type, delivery_agent_id,
                          payment_status, split_details, created_at, updated_at
                   FROM orders WHERE reference=$1`
	var (
		o       model.Order
		rawJSON []byte
	)
	err := r.storage.pool.QueryRow(ctx, query, reference).Scan(
		&o.ID, &o.Reference, &o.Total, &o.SellerID, &o.SellerType, &o.DeliveryAgentID,
		&o.PaymentStatus, &rawJSON, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(rawJSON) > 0 {
		var split model.Split
		if err := json.Unmarshal(rawJSON, &split); err != nil {
			return nil, fmt.Errorf("decode split details: %w", err)
		}
		o.SplitDetails = &split
	}
	return &o, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) EnsureWallets(ctx context.Context, agentID int64) error {
	const query = `INSERT INTO wallets (agent_id, wallet_type, balance)
                   VALUES ($1, $2, 0), ($1, $3, 0)
                   ON CONFLICT (agent_id, wallet_type) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, agentID, model.WalletTypeFood, model.WalletTypeEarnings)
	return err
}

func (r *ledgerRepository) GetWallet(ctx context.Context, agentID int64, walletType model.WalletType) (*model.Wallet, error) {
	const query = `SELECT agent_id, wallet_type, balance, updated_at FROM wallets
                   WHERE agent_id=$1 AND wallet_type=$2`
	var w model.Wallet
	err := r.storage.pool.QueryRow(ctx, query, agentID, walletType).Scan(&w.AgentID, &w.Type, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *ledgerRepository) ApplyPaymentSplit(ctx context.Context, order *model.Order, agentID int64, split model.Split) error {
	details, err := json.Marshal(split)
	if err != nil {
		return fmt.Errorf("encode split details: %w", err)
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		description := fmt.Sprintf("food amount for order %s", order.Reference)
		if err := r.storage.creditTx(ctx, tx, agentID, model.WalletTypeFood, split.Food,
			model.ReferenceTypeOrder, order.Reference, description); err != nil {
			return err
		}

		description = fmt.Sprintf("delivery earnings for order %s", order.Reference)
		if err := r.storage.creditTx(ctx, tx, agentID, model.WalletTypeEarnings, split.AgentEarnings,
			model.ReferenceTypeOrder, order.Reference, description); err != nil {
			return err
		}

		const markPaid = `UPDATE orders SET payment_status=$1, split_details=$2, updated_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, markPaid, model.PaymentStatusPaid, details, order.ID); err != nil {
			return err
		}
		return nil
	})
}

func (r *ledgerRepository) HasOrderCredit(ctx context.Context, orderReference string) (bool, error) {
	const query = `SELECT EXISTS (
                       SELECT 1 FROM wallet_transactions
                       WHERE reference_type=$1 AND reference_id=$2 AND transaction_type=$3
                   )`
	var exists bool
	err := r.storage.pool.QueryRow(ctx, query, model.ReferenceTypeOrder, orderReference, model.TransactionTypeCredit).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return r.storage.creditTx(ctx, tx, agentID, walletType, amount, refType, refID, description)
	})
}

// creditTx applies a single wallet credit inside tx. The transaction record
// insert relies on the idx_wallet_tx_reference unique index: a conflicting
// insert means the credit was already applied and the whole enclosing
// transaction is rolled back with ErrAlreadyProcessed.
func (s *Storage) creditTx(ctx context.Context, tx pgx.Tx, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error {
	const ensureWallet = `INSERT INTO wallets (agent_id, wallet_type, balance) VALUES ($1, $2, 0)
                          ON CONFLICT (agent_id, wallet_type) DO NOTHING`
	if _, err := tx.Exec(ctx, ensureWallet, agentID, walletType); err != nil {
		return err
	}

	const lockBalance = `SELECT balance FROM wallets WHERE agent_id=$1 AND wallet_type=$2 FOR UPDATE`
	var before decimal.Decimal
	if err := tx.QueryRow(ctx, lockBalance, agentID, walletType).Scan(&before); err != nil {
		return err
	}
	after := before.Add(amount)

	const insertTx = `INSERT INTO wallet_transactions
                      (agent_id, wallet_type, transaction_type, amount, balance_before, balance_after, reference_type, reference_id, description)
                      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                      ON CONFLICT (reference_type, reference_id, wallet_type, transaction_type) DO NOTHING`
	tag, err := tx.Exec(ctx, insertTx, agentID, walletType, model.TransactionTypeCredit,
		amount, before, after, refType, refID, description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyProcessed
	}

	const updateBalance = `UPDATE wallets SET balance=$1, updated_at=NOW() WHERE agent_id=$2 AND wallet_type=$3`
	if _, err := tx.Exec(ctx, updateBalance, after, agentID, walletType); err != nil {
		return err
	}
	return nil
}

func (r *ledgerRepository) Debit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockBalance = `SELECT balance FROM wallets WHERE agent_id=$1 AND wallet_type=$2 FOR UPDATE`
		var before decimal.Decimal
		err := tx.QueryRow(ctx, lockBalance, agentID, walletType).Scan(&before)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInsufficientBalance
			}
			return err
		}
		if before.LessThan(amount) {
			return domainErrors.ErrInsufficientBalance
		}
		after := before.Sub(amount)

		const insertTx = `INSERT INTO wallet_transactions
                          (agent_id, wallet_type, transaction_type, amount, balance_before, balance_after, reference_type, reference_id, description)
                          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                          ON CONFLICT (reference_type, reference_id, wallet_type, transaction_type) DO NOTHING`
		tag, err := tx.Exec(ctx, insertTx, agentID, walletType, model.TransactionTypeDebit,
			amount, before, after, refType, refID, description)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrAlreadyProcessed
		}

		const updateBalance = `UPDATE wallets SET balance=$1, updated_at=NOW() WHERE agent_id=$2 AND wallet_type=$3`
		if _, err := tx.Exec(ctx, updateBalance, after, agentID, walletType); err != nil {
			return err
		}
		return nil
	})
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, agentID int64, limit int) ([]model.WalletTransaction, error) {
	const query = `SELECT id, agent_id, wallet_type, transaction_type, amount, balance_before, balance_after,
                          reference_type, reference_id, description, created_at
                   FROM wallet_transactions WHERE agent_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WalletTransaction
	for rows.Next() {
		var t model.WalletTransaction
		if err := rows.Scan(&t.ID, &t.AgentID, &t.WalletType, &t.Type, &t.Amount, &t.BalanceBefore,
			&t.BalanceAfter, &t.ReferenceType, &t.ReferenceID, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PayoutProfileRepository implementation ---

func (r *payoutProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.PayoutProfile, error) {
	const query = `SELECT user_id, account_number, bank_code, account_name, verified, recipient_code, updated_at
                   FROM payout_profiles WHERE user_id=$1`
	var p model.PayoutProfile
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.AccountNumber, &p.BankCode, &p.AccountName, &p.Verified, &p.RecipientCode, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *payoutProfileRepository) Upsert(ctx context.Context, profile *model.PayoutProfile) error {
	const query = `INSERT INTO payout_profiles (user_id, account_number, bank_code, account_name, verified, recipient_code)
                   VALUES ($1, $2, $3, $4, $5, NULL)
                   ON CONFLICT (user_id) DO UPDATE
                   SET account_number = EXCLUDED.account_number,
                       bank_code = EXCLUDED.bank_code,
                       account_name = EXCLUDED.account_name,
                       verified = EXCLUDED.verified,
                       recipient_code = NULL,
                       updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, profile.UserID, profile.AccountNumber, profile.BankCode, profile.AccountName, profile.Verified)
	return err
}

func (r *payoutProfileRepository) SetRecipientCode(ctx context.Context, userID int64, code string) error {
	const query = `UPDATE payout_profiles SET recipient_code=$1, updated_at=NOW() WHERE user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, code, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- WithdrawalRepository implementation ---

const withdrawalColumns = `id, agent_id, amount, type, status, reference, transfer_code,
                           error_message, admin_notes, approved_by, approved_at, created_at, processed_at`

func scanWithdrawal(row pgx.Row) (*model.Withdrawal, error) {
	var (
		w     model.Withdrawal
		notes *string
	)
	err := row.Scan(&w.ID, &w.AgentID, &w.Amount, &w.Type, &w.Status, &w.Reference, &w.TransferCode,
		&w.ErrorMessage, &notes, &w.ApprovedBy, &w.ApprovedAt, &w.CreatedAt, &w.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) Create(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType, reference string) (*model.Withdrawal, error) {
	const query = `INSERT INTO withdrawals (agent_id, amount, type, status, reference)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	w := model.Withdrawal{
		AgentID:   agentID,
		Amount:    amount,
		Type:      withdrawalType,
		Status:    model.WithdrawalStatusPending,
		Reference: reference,
	}
	err := r.storage.pool.QueryRow(ctx, query, agentID, amount, withdrawalType, model.WithdrawalStatusPending, reference).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id=$1`
	return scanWithdrawal(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *withdrawalRepository) GetByTransferCode(ctx context.Context, transferCode string) (*model.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE transfer_code=$1`
	return scanWithdrawal(r.storage.pool.QueryRow(ctx, query, transferCode))
}

func (r *withdrawalRepository) ListByAgent(ctx context.Context, agentID int64) ([]model.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE agent_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) MarkProcessing(ctx context.Context, id int64, transferCode string) error {
	const query = `UPDATE withdrawals SET status=$1, transfer_code=$2 WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.WithdrawalStatusProcessing, transferCode, id, model.WithdrawalStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *withdrawalRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	const query = `UPDATE withdrawals SET status=$1, error_message=$2, processed_at=NOW() WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.WithdrawalStatusFailed, errorMessage, id, model.WithdrawalStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *withdrawalRepository) Finalize(ctx context.Context, transferCode string, status model.WithdrawalStatus, errorMessage string) (*model.Withdrawal, error) {
	var result *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE transfer_code=$1 FOR UPDATE`
		w, err := scanWithdrawal(tx.QueryRow(ctx, lockQuery, transferCode))
		if err != nil {
			return err
		}
		if w.Status.Terminal() {
			return domainErrors.ErrWithdrawalFinalized
		}

		var message *string
		if errorMessage != "" {
			message = &errorMessage
		}
		const update = `UPDATE withdrawals SET status=$1, error_message=$2, processed_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, update, status, message, w.ID); err != nil {
			return err
		}

		now := time.Now()
		w.Status = status
		w.ErrorMessage = message
		w.ProcessedAt = &now
		result = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) AdminComplete(ctx context.Context, id, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error) {
	var result *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id=$1 FOR UPDATE`
		w, err := scanWithdrawal(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return err
		}
		if w.Status.Terminal() {
			return domainErrors.ErrWithdrawalFinalized
		}

		const update = `UPDATE withdrawals
                        SET status=$1,
                            transfer_code=COALESCE(NULLIF($2, ''), transfer_code),
                            admin_notes=NULLIF($3, ''),
                            approved_by=$4,
                            approved_at=NOW(),
                            processed_at=NOW()
                        WHERE id=$5`
		if _, err := tx.Exec(ctx, update, model.WithdrawalStatusCompleted, gatewayReference, notes, adminID, id); err != nil {
			return err
		}

		now := time.Now()
		w.Status = model.WithdrawalStatusCompleted
		if gatewayReference != "" {
			w.TransferCode = &gatewayReference
		}
		w.ApprovedBy = &adminID
		w.ApprovedAt = &now
		w.ProcessedAt = &now
		result = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) ListStalePending(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + `
              FROM withdrawals
              WHERE status='pending' AND created_at < NOW() - make_interval(secs => $1)
              ORDER BY created_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, maxAge.Seconds(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []model.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		stale = append(stale, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stale, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
