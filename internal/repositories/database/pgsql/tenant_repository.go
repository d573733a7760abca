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

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

const tenantColumns = `
	tenant_id, name, slug, status, base_currency_code, fiscal_year_start_month,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(
		&t.TenantID,
		&t.Name,
		&t.Slug,
		&t.Status,
		&t.BaseCurrencyCode,
		&t.FiscalYearStartMonth,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
	}
	return &t, nil
}

// FindTenantByID retrieves a tenant by its unique identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`
	return scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
}

// FindTenantBySlug retrieves a tenant by its isolation key.
func (r *PgxTenantRepository) FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `SELECT` + tenantColumns + ` FROM tenants WHERE slug = $1;`
	return scanTenant(r.Pool.QueryRow(ctx, query, slug))
}

// ListTenants retrieves all tenants, newest first.
func (r *PgxTenantRepository) ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT` + tenantColumns + `
		FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants", err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}
	return tenants, nil
}

// SaveTenantWithAccounts persists a new tenant together with its seeded
// system chart of accounts in a single transaction.
func (r *PgxTenantRepository) SaveTenantWithAccounts(ctx context.Context, tenant domain.Tenant, accounts []domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tenantQuery := `
		INSERT INTO tenants (
			tenant_id, name, slug, status, base_currency_code, fiscal_year_start_month,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err = tx.Exec(ctx, tenantQuery,
		tenant.TenantID,
		tenant.Name,
		tenant.Slug,
		tenant.Status,
		tenant.BaseCurrencyCode,
		tenant.FiscalYearStartMonth,
		tenant.CreatedAt,
		tenant.CreatedBy,
		tenant.LastUpdatedAt,
		tenant.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+tenant.TenantID, err)
	}

	batch := &pgx.Batch{}
	accountQuery := `
		INSERT INTO accounts (
			account_id, tenant_id, code, name, account_type, description,
			is_system, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	for _, a := range accounts {
		batch.Queue(accountQuery,
			a.AccountID,
			a.TenantID,
			a.Code,
			a.Name,
			a.AccountType,
			a.Description,
			a.IsSystem,
			a.IsActive,
			a.CreatedAt,
			a.CreatedBy,
			a.LastUpdatedAt,
			a.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to seed accounts for tenant "+tenant.TenantID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTenantStatus changes the lifecycle status of a tenant.
func (r *PgxTenantRepository) UpdateTenantStatus(ctx context.Context, tenantID string, status domain.TenantStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE tenants
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE tenant_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, status, updatedBy, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
