package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, tenant_id, code, name, account_type, description,
	is_system, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.TenantID,
		&a.Code,
		&a.Name,
		&a.AccountType,
		&a.Description,
		&a.IsSystem,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account row", err)
	}
	return &a, nil
}

// FindAccountByID retrieves a specific account within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	return scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
}

// FindAccountByName retrieves an account by name within a tenant,
// case-insensitively.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND lower(name) = lower($2);`
	return scanAccount(r.Pool.QueryRow(ctx, query, tenantID, name))
}

// FindAccountsByIDs retrieves multiple accounts by ID within a tenant.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[a.AccountID] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts for a tenant, optionally filtered by type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, typeFilter *domain.AccountType) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if typeFilter != nil {
		query += ` AND account_type = $2`
		args = append(args, *typeFilter)
	}
	query += ` ORDER BY account_type, code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for tenant "+tenantID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// HasUnreconciledEntries reports whether any unreconciled ledger entry
// references the account.
func (r *PgxAccountRepository) HasUnreconciledEntries(ctx context.Context, tenantID string, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE tenant_id = $1 AND account_id = $2 AND reconciliation_batch_id IS NULL
		);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check entries for account "+accountID, err)
	}
	return exists, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, tenant_id, code, name, account_type, description,
			is_system, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Code,
		account.Name,
		account.AccountType,
		account.Description,
		account.IsSystem,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_by = $3, last_updated_at = $4
		WHERE tenant_id = $1 AND account_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, accountID, updatedBy, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
