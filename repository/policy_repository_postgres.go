package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loan-eligibility/domain"
)

const policyColumns = `
	id, lender_name, product_name,
	purchase_allowed, refinance_allowed, balance_transfer_allowed,
	petrol_allowed, diesel_allowed, cng_allowed, electric_allowed,
	salaried_allowed, self_employed_allowed,
	min_cibil_score, max_dpd_allowed, min_tenure_months, max_tenure_months,
	min_age, max_age, min_income, roi_min, roi_max,
	purchase_ltv, refinance_ltv, balance_transfer_ltv`

const createPolicyTable = `
CREATE TABLE IF NOT EXISTS lender_policies (
	id                       BIGINT PRIMARY KEY,
	lender_name              TEXT NOT NULL,
	product_name             TEXT NOT NULL,
	purchase_allowed         BOOLEAN NOT NULL DEFAULT FALSE,
	refinance_allowed        BOOLEAN NOT NULL DEFAULT FALSE,
	balance_transfer_allowed BOOLEAN NOT NULL DEFAULT FALSE,
	petrol_allowed           BOOLEAN NOT NULL DEFAULT FALSE,
	diesel_allowed           BOOLEAN NOT NULL DEFAULT FALSE,
	cng_allowed              BOOLEAN NOT NULL DEFAULT FALSE,
	electric_allowed         BOOLEAN NOT NULL DEFAULT FALSE,
	salaried_allowed         BOOLEAN NOT NULL DEFAULT FALSE,
	self_employed_allowed    BOOLEAN NOT NULL DEFAULT FALSE,
	min_cibil_score          INTEGER NOT NULL DEFAULT 0,
	max_dpd_allowed          INTEGER NOT NULL DEFAULT 0,
	min_tenure_months        INTEGER NOT NULL DEFAULT 0,
	max_tenure_months        INTEGER NOT NULL DEFAULT 0,
	min_age                  INTEGER NOT NULL DEFAULT 0,
	max_age                  INTEGER NOT NULL DEFAULT 0,
	min_income               NUMERIC(14,2) NOT NULL DEFAULT 0,
	roi_min                  NUMERIC(6,2) NOT NULL DEFAULT 0,
	roi_max                  NUMERIC(6,2) NOT NULL DEFAULT 0,
	purchase_ltv             NUMERIC(6,2) NOT NULL DEFAULT 0,
	refinance_ltv            NUMERIC(6,2) NOT NULL DEFAULT 0,
	balance_transfer_ltv     NUMERIC(6,2) NOT NULL DEFAULT 0
)`

// PolicyRepositoryPostgres reads the lender_policies table.
type PolicyRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewPolicyRepositoryPostgres(pool *pgxpool.Pool) *PolicyRepositoryPostgres {
	return &PolicyRepositoryPostgres{pool: pool}
}

// NewPool creates a pgx pool for dsn and verifies connectivity.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnLifetime = 1 * time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the lender_policies table if it does not exist.
func (r *PolicyRepositoryPostgres) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createPolicyTable); err != nil {
		return fmt.Errorf("create lender_policies: %w", err)
	}
	return nil
}

func (r *PolicyRepositoryPostgres) List(ctx context.Context) ([]domain.LenderPolicy, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+policyColumns+` FROM lender_policies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list lender policies: %w", err)
	}
	defer rows.Close()

	policies := []domain.LenderPolicy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lender policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lender policies: %w", err)
	}
	return policies, nil
}

// Seed inserts policies in one transaction, leaving existing ids untouched.
func (r *PolicyRepositoryPostgres) Seed(ctx context.Context, policies []domain.LenderPolicy) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed lender policies: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `INSERT INTO lender_policies (` + policyColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, p := range policies {
		batch.Queue(query,
			p.ID, p.LenderName, p.ProductName,
			p.PurchaseAllowed, p.RefinanceAllowed, p.BalanceTransferAllowed,
			p.PetrolAllowed, p.DieselAllowed, p.CNGAllowed, p.ElectricAllowed,
			p.SalariedAllowed, p.SelfEmployedAllowed,
			p.MinCibilScore, p.MaxDPDAllowed, p.MinTenureMonths, p.MaxTenureMonths,
			p.MinAge, p.MaxAge, p.MinIncome, p.RoiMin, p.RoiMax,
			p.PurchaseLTV, p.RefinanceLTV, p.BalanceTransferLTV,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed lender policies: insert: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed lender policies: commit: %w", err)
	}
	return nil
}

func scanPolicy(row pgx.Row) (domain.LenderPolicy, error) {
	var p domain.LenderPolicy
	err := row.Scan(
		&p.ID, &p.LenderName, &p.ProductName,
		&p.PurchaseAllowed, &p.RefinanceAllowed, &p.BalanceTransferAllowed,
		&p.PetrolAllowed, &p.DieselAllowed, &p.CNGAllowed, &p.ElectricAllowed,
		&p.SalariedAllowed, &p.SelfEmployedAllowed,
		&p.MinCibilScore, &p.MaxDPDAllowed, &p.MinTenureMonths, &p.MaxTenureMonths,
		&p.MinAge, &p.MaxAge, &p.MinIncome, &p.RoiMin, &p.RoiMax,
		&p.PurchaseLTV, &p.RefinanceLTV, &p.BalanceTransferLTV,
	)
	return p, err
}
