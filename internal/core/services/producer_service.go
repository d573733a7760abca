package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// producerService translates business events from the surrounding modules
// into posting requests. It is deliberately thin: all invariants live in the
// posting engine, which treats these requests exactly like manual entries.
type producerService struct {
	BaseService
	postingSvc portssvc.PostingSvcFacade
	accountSvc portssvc.AccountSvcFacade
}

// NewProducerService creates a new ProducerService.
func NewProducerService(ps portssvc.PostingSvcFacade, as portssvc.AccountSvcFacade) portssvc.ProducerSvcFacade {
	return &producerService{postingSvc: ps, accountSvc: as}
}

var _ portssvc.ProducerSvcFacade = (*producerService)(nil)

// PostSalesInvoice posts: debit Receivable (or Cash) for the gross total,
// credit Sales Revenue for the subtotal, credit VAT Payable for the tax, and
// debit COGS / credit Inventory for the cost basis when one is given.
func (s *producerService) PostSalesInvoice(ctx context.Context, tenant *domain.Tenant, in dto.SalesInvoiceInput, userID string) (*domain.JournalVoucher, error) {
	debitName := domain.AccountReceivable
	if in.CashSale {
		debitName = domain.AccountCash
	}
	debitAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, debitName)
	if err != nil {
		return nil, err
	}
	salesAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountSalesRevenue)
	if err != nil {
		return nil, err
	}

	total := in.Subtotal.Add(in.Tax)
	lines := []domain.PostingLine{
		{AccountID: debitAcc.AccountID, Side: domain.Debit, Amount: total},
		{AccountID: salesAcc.AccountID, Side: domain.Credit, Amount: in.Subtotal},
	}

	if in.Tax.GreaterThan(decimal.Zero) {
		vatAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountVATPayable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.PostingLine{AccountID: vatAcc.AccountID, Side: domain.Credit, Amount: in.Tax})
	}

	if in.CostOfGoods.GreaterThan(decimal.Zero) {
		cogsAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountCOGS)
		if err != nil {
			return nil, err
		}
		invAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountInventory)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			domain.PostingLine{AccountID: cogsAcc.AccountID, Side: domain.Debit, Amount: in.CostOfGoods},
			domain.PostingLine{AccountID: invAcc.AccountID, Side: domain.Credit, Amount: in.CostOfGoods},
		)
	}

	return s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
		SourceModule: domain.SourceSales,
		Date:         in.Date,
		Description:  orDefault(in.Description, fmt.Sprintf("Sales invoice %s", in.InvoiceID)),
		SourceDoc:    domain.DocumentRef{Type: domain.DocInvoice, ID: in.InvoiceID},
		Lines:        lines,
	}, userID)
}

// PostPurchaseBill posts: debit Inventory for the subtotal, debit VAT
// Refundable for the tax, credit Accounts Payable for the gross total.
func (s *producerService) PostPurchaseBill(ctx context.Context, tenant *domain.Tenant, in dto.PurchaseBillInput, userID string) (*domain.JournalVoucher, error) {
	invAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountInventory)
	if err != nil {
		return nil, err
	}
	apAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountPayable)
	if err != nil {
		return nil, err
	}

	total := in.Subtotal.Add(in.Tax)
	lines := []domain.PostingLine{
		{AccountID: invAcc.AccountID, Side: domain.Debit, Amount: in.Subtotal},
		{AccountID: apAcc.AccountID, Side: domain.Credit, Amount: total},
	}
	if in.Tax.GreaterThan(decimal.Zero) {
		vatAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountVATRefundable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.PostingLine{AccountID: vatAcc.AccountID, Side: domain.Debit, Amount: in.Tax})
	}

	return s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
		SourceModule: domain.SourcePurchase,
		Date:         in.Date,
		Description:  orDefault(in.Description, fmt.Sprintf("Purchase bill %s", in.BillID)),
		SourceDoc:    domain.DocumentRef{Type: domain.DocBill, ID: in.BillID},
		Lines:        lines,
	}, userID)
}

// PostExpense posts: debit the chosen expense account (plus VAT Refundable
// for any recoverable tax), credit Cash or Bank.
func (s *producerService) PostExpense(ctx context.Context, tenant *domain.Tenant, in dto.ExpenseInput, userID string) (*domain.JournalVoucher, error) {
	creditName := domain.AccountCash
	if in.PaidFromBank {
		creditName = domain.AccountBank
	}
	creditAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, creditName)
	if err != nil {
		return nil, err
	}

	total := in.Amount.Add(in.Tax)
	lines := []domain.PostingLine{
		{AccountID: in.ExpenseAccountID, Side: domain.Debit, Amount: in.Amount},
		{AccountID: creditAcc.AccountID, Side: domain.Credit, Amount: total},
	}
	if in.Tax.GreaterThan(decimal.Zero) {
		vatAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountVATRefundable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.PostingLine{AccountID: vatAcc.AccountID, Side: domain.Debit, Amount: in.Tax})
	}

	return s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
		SourceModule: domain.SourceExpense,
		Date:         in.Date,
		Description:  orDefault(in.Description, fmt.Sprintf("Expense %s", in.ExpenseID)),
		SourceDoc:    domain.DocumentRef{Type: domain.DocExpense, ID: in.ExpenseID},
		Lines:        lines,
	}, userID)
}

// PostPayrollRun posts: debit Salaries & Wages for gross pay, credit Bank for
// net pay, credit Payroll Liabilities for the retained deductions.
func (s *producerService) PostPayrollRun(ctx context.Context, tenant *domain.Tenant, in dto.PayrollRunInput, userID string) (*domain.JournalVoucher, error) {
	salariesAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountSalaries)
	if err != nil {
		return nil, err
	}
	bankAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountBank)
	if err != nil {
		return nil, err
	}

	net := in.GrossPay.Sub(in.Deductions)
	lines := []domain.PostingLine{
		{AccountID: salariesAcc.AccountID, Side: domain.Debit, Amount: in.GrossPay},
		{AccountID: bankAcc.AccountID, Side: domain.Credit, Amount: net},
	}
	if in.Deductions.GreaterThan(decimal.Zero) {
		liabAcc, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountPayrollLiability)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.PostingLine{AccountID: liabAcc.AccountID, Side: domain.Credit, Amount: in.Deductions})
	}

	return s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
		SourceModule: domain.SourcePayroll,
		Date:         in.Date,
		Description:  orDefault(in.Description, fmt.Sprintf("Payroll run %s", in.PayslipID)),
		SourceDoc:    domain.DocumentRef{Type: domain.DocPayslip, ID: in.PayslipID},
		Lines:        lines,
	}, userID)
}

// PostFundTransfer posts: debit the destination account, credit the source
// account.
func (s *producerService) PostFundTransfer(ctx context.Context, tenant *domain.Tenant, in dto.FundTransferInput, userID string) (*domain.JournalVoucher, error) {
	return s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
		SourceModule: domain.SourceTransfer,
		Date:         in.Date,
		Description:  orDefault(in.Description, fmt.Sprintf("Fund transfer %s", in.TransferID)),
		SourceDoc:    domain.DocumentRef{Type: domain.DocFundTransfer, ID: in.TransferID},
		Lines: []domain.PostingLine{
			{AccountID: in.ToAccountID, Side: domain.Debit, Amount: in.Amount},
			{AccountID: in.FromAccountID, Side: domain.Credit, Amount: in.Amount},
		},
	}, userID)
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
