package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
	"github.com/tenbooks/tenbooks_app/internal/utils/accounting"
)

// Rejection errors. These are surfaced before any write and are never
// retried: resubmitting the same malformed request cannot succeed.
var (
	ErrEmptyPosting      = errors.New("posting request has no lines")
	ErrUnbalancedPosting = errors.New("posting debits and credits are not equal")
	ErrUnknownAccount    = errors.New("posting references an unknown or inactive account")
	ErrInvalidAmount     = errors.New("posting line amount is invalid")
)

// Commit contention retry policy. Serialization conflicts are safe to retry
// because the request itself was valid.
const (
	commitMaxAttempts  = 3
	commitRetryBackoff = 25 * time.Millisecond
)

// postingService is the ledger posting engine: the single entry point
// through which every balanced business event becomes a voucher plus its
// immutable ledger entries.
type postingService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	metrics     *PostingMetrics
}

// NewPostingService creates a new PostingService.
func NewPostingService(vr portsrepo.VoucherRepositoryFacade, as portssvc.AccountSvcFacade, metrics *PostingMetrics) portssvc.PostingSvcFacade {
	return &postingService{voucherRepo: vr, accountSvc: as, metrics: metrics}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Commit validates the posting request and writes the voucher atomically.
// Validation failures are reported in a fixed order, each with its own
// sentinel, before anything touches storage.
func (s *postingService) Commit(ctx context.Context, tenant *domain.Tenant, req domain.PostingRequest, creatorUserID string) (*domain.JournalVoucher, error) {
	start := time.Now()
	voucher, err := s.commit(ctx, tenant, req, creatorUserID)
	if s.metrics != nil {
		s.metrics.Observe(req.SourceModule, err, time.Since(start))
	}
	return voucher, err
}

func (s *postingService) commit(ctx context.Context, tenant *domain.Tenant, req domain.PostingRequest, creatorUserID string) (*domain.JournalVoucher, error) {
	// 1. EmptyPosting
	if len(req.Lines) == 0 {
		return nil, ErrEmptyPosting
	}

	// 2. UnbalancedPosting: exact decimal equality, no rounding tolerance.
	debits, credits := req.DebitTotal(), req.CreditTotal()
	if !debits.Equal(credits) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedPosting, debits.String(), credits.String())
	}

	// 3. UnknownAccount: every line's account must exist, belong to this
	// tenant and be active. Cross-tenant IDs come back as missing because
	// the lookup itself is tenant-scoped.
	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]struct{}, len(req.Lines))
	for _, line := range req.Lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenant, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s is inactive", ErrUnknownAccount, id)
		}
	}

	// 4. InvalidAmount: strictly positive, fixed-point at 2 decimal places,
	// exactly one side per line.
	for i, line := range req.Lines {
		if line.Side != domain.Debit && line.Side != domain.Credit {
			return nil, fmt.Errorf("%w: line %d has side %q", ErrInvalidAmount, i, line.Side)
		}
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d amount %s is not positive", ErrInvalidAmount, i, line.Amount.String())
		}
		if !accounting.ValidScale(line.Amount) {
			return nil, fmt.Errorf("%w: line %d amount %s exceeds 2 decimal places", ErrInvalidAmount, i, line.Amount.String())
		}
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()

	voucher := domain.JournalVoucher{
		VoucherID:    voucherID,
		TenantID:     tenant.TenantID,
		Date:         req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		SourceModule: req.SourceModule,
		SourceDoc:    req.SourceDoc,
		Status:       domain.Posted,
		Amount:       debits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entries := make([]domain.LedgerEntry, len(req.Lines))
	for i, line := range req.Lines {
		entry := domain.LedgerEntry{
			EntryID:     uuid.NewString(),
			TenantID:    tenant.TenantID,
			AccountID:   line.AccountID,
			VoucherID:   voucherID,
			Date:        req.Date,
			Description: line.Description,
			SourceDoc:   req.SourceDoc,
			CreatedAt:   now,
			CreatedBy:   creatorUserID,
		}
		if entry.Description == "" {
			entry.Description = req.Description
		}
		if line.Side == domain.Debit {
			entry.Debit = line.Amount
			entry.Credit = decimal.Zero
		} else {
			entry.Debit = decimal.Zero
			entry.Credit = line.Amount
		}
		entries[i] = entry
	}

	// All-or-nothing write. Serialization conflicts get a bounded retry;
	// the voucher number is allocated inside the storage transaction, so a
	// failed attempt may leave a gap in the sequence but never a duplicate.
	var saved *domain.JournalVoucher
	for attempt := 1; ; attempt++ {
		saved, err = s.voucherRepo.SaveVoucher(ctx, voucher, entries)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConcurrentModification) || attempt >= commitMaxAttempts {
			s.LogError(ctx, err, "Failed to save voucher",
				slog.String("tenant_id", tenant.TenantID),
				slog.String("source_module", string(req.SourceModule)),
				slog.Int("attempt", attempt))
			return nil, fmt.Errorf("failed to commit posting: %w", err)
		}
		s.LogWarn(ctx, "Commit hit a serialization conflict, retrying",
			slog.String("tenant_id", tenant.TenantID), slog.Int("attempt", attempt))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(commitRetryBackoff * time.Duration(attempt)):
		}
	}

	s.LogInfo(ctx, "Posting committed",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("voucher_number", saved.VoucherNumber),
		slog.String("source_module", string(req.SourceModule)),
		slog.Int("lines", len(entries)))
	return saved, nil
}

// ReversePosting posts a mirrored voucher correcting a committed one.
// History is immutable: the original voucher's entries are untouched, its
// status flips to REVERSED and both vouchers link to each other.
func (s *postingService) ReversePosting(ctx context.Context, tenant *domain.Tenant, voucherID string, userID string) (*domain.JournalVoucher, error) {
	original, err := s.voucherRepo.FindVoucherByID(ctx, tenant.TenantID, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch voucher for reversal: %w", err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: voucher %s is %s, expected POSTED", apperrors.ErrConflict, original.VoucherNumber, original.Status)
	}
	if original.OriginalVoucherID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a voucher that is itself a reversal", apperrors.ErrConflict)
	}

	// The reversing voucher gets its own deterministic reference. It must
	// not repeat the original's (the tenant+module+reference uniqueness of
	// referenced vouchers would reject the insert), and keying it on the
	// original's number lets an interrupted reversal be resumed: if the
	// reversing voucher landed but the original was never flipped to
	// REVERSED, a retry finds it here and completes the link instead of
	// posting a second reversal.
	revRef := "REV-" + original.VoucherNumber
	existing, err := s.voucherRepo.FindVoucherByReference(ctx, tenant.TenantID, original.SourceModule, revRef)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing reversal: %w", err)
	}
	if existing != nil {
		if err := s.voucherRepo.UpdateVoucherStatusAndLinks(ctx, tenant.TenantID, original.VoucherID, domain.Reversed, &existing.VoucherID, userID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to link reversal: %w", err)
		}
		s.LogWarn(ctx, "Resumed interrupted reversal",
			slog.String("original", original.VoucherNumber),
			slog.String("reversing", existing.VoucherNumber))
		return existing, nil
	}

	originalEntries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, tenant.TenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for reversal: %w", err)
	}

	lines := make([]domain.PostingLine, len(originalEntries))
	for i, e := range originalEntries {
		side := domain.Debit
		amount := e.Credit
		if e.Debit.GreaterThan(decimal.Zero) {
			side = domain.Credit
			amount = e.Debit
		}
		lines[i] = domain.PostingLine{
			AccountID:   e.AccountID,
			Side:        side,
			Amount:      amount,
			Description: e.Description,
		}
	}

	req := domain.PostingRequest{
		SourceModule: original.SourceModule,
		Date:         original.Date,
		Description:  fmt.Sprintf("Reversal of %s: %s", original.VoucherNumber, original.Description),
		Reference:    revRef,
		SourceDoc:    original.SourceDoc,
		Lines:        lines,
	}

	reversing, err := s.Commit(ctx, tenant, req, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.UpdateVoucherStatusAndLinks(ctx, tenant.TenantID, original.VoucherID, domain.Reversed, &reversing.VoucherID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark original voucher reversed",
			slog.String("original_voucher_id", original.VoucherID),
			slog.String("reversing_voucher_id", reversing.VoucherID))
		return nil, fmt.Errorf("failed to link reversal: %w", err)
	}

	s.LogInfo(ctx, "Voucher reversed",
		slog.String("original", original.VoucherNumber),
		slog.String("reversing", reversing.VoucherNumber))
	return reversing, nil
}

// GetVoucher retrieves a voucher and its entries.
func (s *postingService) GetVoucher(ctx context.Context, tenant *domain.Tenant, voucherID string) (*domain.JournalVoucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, tenant.TenantID, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, tenant.TenantID, voucherID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch voucher entries", slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch entries for voucher %s: %w", voucherID, apperrors.ErrInternal)
	}
	voucher.Entries = entries
	return voucher, nil
}

// ListVouchers retrieves a page of vouchers, newest first.
func (s *postingService) ListVouchers(ctx context.Context, tenant *domain.Tenant, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchersByTenant(ctx, tenant.TenantID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	responses := make([]dto.VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = dto.ToVoucherResponse(&vouchers[i])
	}
	return &dto.ListVouchersResponse{Vouchers: responses, NextToken: nextToken}, nil
}

// ListEntriesByAccount retrieves a page of one account's entries.
func (s *postingService) ListEntriesByAccount(ctx context.Context, tenant *domain.Tenant, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, tenant, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.voucherRepo.ListEntriesByAccount(ctx, tenant.TenantID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries), NextToken: nextToken}, nil
}
