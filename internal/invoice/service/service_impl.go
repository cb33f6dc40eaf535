package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/config"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	"github.com/smallbiznis/billora/internal/document/format"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/lineitem"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/pkg/db"
	"github.com/smallbiznis/billora/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config        config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Repo          domain.Repository
	CustomerRepo  customerdomain.Repository
	QuotationRepo quotationdomain.Repository
}

type Service struct {
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	repo          domain.Repository
	customerRepo  customerdomain.Repository
	quotationRepo quotationdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:           p.Config,
		db:            p.DB,
		log:           p.Log.Named("invoice.service"),
		genID:         p.GenID,
		repo:          p.Repo,
		customerRepo:  p.CustomerRepo,
		quotationRepo: p.QuotationRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.Invoice{}, err
	}

	taxRate, err := normalizeTaxRate(req.TaxApplicable, req.TaxRate)
	if err != nil {
		return domain.Invoice{}, err
	}

	items := domain.Items(req.Items)
	totals := lineitem.Compute(items, lineitem.TaxConfig{
		Applicable:  req.TaxApplicable,
		RatePercent: taxRate,
	})
	if len(lineitem.ValidOf(items)) == 0 {
		return domain.Invoice{}, domain.ErrNoValidItems
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, 30)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	invoice := domain.Invoice{
		ID:             s.genID.Generate(),
		CustomerID:     customerID,
		Status:         domain.InvoiceStatusDraft,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		TaxApplicable:  req.TaxApplicable,
		TaxRate:        taxRate,
		SubtotalAmount: totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.TotalAmount,
		Notes:          strings.TrimSpace(req.Notes),
		Items:          s.buildItems(0, items, now),
		Metadata:       datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}

	if err := s.insertNumbered(ctx, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if existing == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	if existing.Status.Terminal() {
		return domain.Invoice{}, domain.ErrTerminalStatus
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.Invoice{}, err
	}

	taxRate, err := normalizeTaxRate(req.TaxApplicable, req.TaxRate)
	if err != nil {
		return domain.Invoice{}, err
	}

	items := domain.Items(req.Items)
	totals := lineitem.Compute(items, lineitem.TaxConfig{
		Applicable:  req.TaxApplicable,
		RatePercent: taxRate,
	})
	if len(lineitem.ValidOf(items)) == 0 {
		return domain.Invoice{}, domain.ErrNoValidItems
	}

	now := time.Now().UTC()
	existing.CustomerID = customerID
	if req.IssueDate != nil {
		existing.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		existing.DueDate = req.DueDate.UTC()
	}
	existing.TaxApplicable = req.TaxApplicable
	existing.TaxRate = taxRate
	existing.SubtotalAmount = totals.Subtotal
	existing.TaxAmount = totals.TaxAmount
	existing.TotalAmount = totals.TotalAmount
	existing.Notes = strings.TrimSpace(req.Notes)
	existing.Items = s.buildItems(existing.ID, items, now)
	existing.UpdatedAt = now

	if err := s.repo.ReplaceItems(ctx, s.db, existing); err != nil {
		return domain.Invoice{}, err
	}

	return *existing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	if req.Status != nil && !req.Status.Known() {
		return domain.ListInvoiceResponse{}, domain.ErrUnknownStatus
	}

	filter := domain.ListInvoiceFilter{
		Status:      req.Status,
		CustomerID:  strings.TrimSpace(req.CustomerID),
		QuotationID: strings.TrimSpace(req.QuotationID),
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Invoice, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Invoice{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) Send(ctx context.Context, id string) (domain.Invoice, error) {
	return s.UpdateStatus(ctx, id, domain.InvoiceStatusSent)
}

func (s *Service) MarkPaid(ctx context.Context, id string) (domain.Invoice, error) {
	return s.UpdateStatus(ctx, id, domain.InvoiceStatusPaid)
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, status domain.InvoiceStatus) (domain.Invoice, error) {
	if !status.Known() {
		return domain.Invoice{}, domain.ErrUnknownStatus
	}

	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Invoice{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if existing == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	// Re-applying the current status is a no-op, not an error.
	if existing.Status == status {
		return *existing, nil
	}
	if existing.Status.Terminal() {
		return domain.Invoice{}, domain.ErrTerminalStatus
	}
	if !existing.Status.CanTransitionTo(status) {
		return domain.Invoice{}, domain.ErrStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, s.db, id, status); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice status updated",
		zap.String("invoice_id", existing.ID.String()),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(status)),
	)

	existing.Status = status
	existing.UpdatedAt = time.Now().UTC()
	return *existing, nil
}

func (s *Service) ConvertFromQuotation(ctx context.Context, rawQuotationID string) (domain.Invoice, error) {
	quotationID, err := snowflake.ParseString(strings.TrimSpace(rawQuotationID))
	if err != nil || quotationID == 0 {
		return domain.Invoice{}, domain.ErrQuotationNotFound
	}

	quotation, err := s.quotationRepo.FindByID(ctx, s.db, quotationID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if quotation == nil {
		return domain.Invoice{}, domain.ErrQuotationNotFound
	}

	now := time.Now().UTC()
	sourceID := quotation.ID
	invoice := domain.Invoice{
		ID:             s.genID.Generate(),
		CustomerID:     quotation.CustomerID,
		QuotationID:    &sourceID,
		Status:         domain.InvoiceStatusDraft,
		IssueDate:      now,
		DueDate:        now.AddDate(0, 0, 30),
		TaxApplicable:  quotation.TaxApplicable,
		TaxRate:        quotation.TaxRate,
		SubtotalAmount: quotation.SubtotalAmount,
		TaxAmount:      quotation.TaxAmount,
		TotalAmount:    quotation.TotalAmount,
		Notes:          quotation.Notes,
		Metadata:       datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Deep-copy the item rows. Every copy gets a fresh identity so the
	// invoice and the source quotation never share rows.
	invoice.Items = make([]domain.InvoiceItem, 0, len(quotation.Items))
	for _, item := range quotation.Items {
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoice.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
			CreatedAt:   now,
		})
	}

	if err := s.insertNumbered(ctx, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("quotation converted to invoice",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

// insertNumbered assigns the next document number and inserts the invoice
// in one transaction. Concurrent inserts on the same day can race on the
// unique number index; retry with a fresh sequence.
func (s *Service) insertNumbered(ctx context.Context, invoice *domain.Invoice) error {
	for attempt := 0; ; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seq, err := s.repo.NextSequence(ctx, tx, invoice.IssueDate)
			if err != nil {
				return err
			}
			number, err := format.FormatDocumentNumber(s.cfg.InvoiceNumberTemplate, invoice.IssueDate, seq)
			if err != nil {
				return err
			}
			invoice.InvoiceNumber = number
			return s.repo.Insert(ctx, tx, invoice)
		})
		if err == nil {
			return nil
		}
		if db.IsDuplicateKeyErr(err) && attempt < 2 {
			continue
		}
		return err
	}
}

func (s *Service) resolveCustomer(ctx context.Context, rawID string) (snowflake.ID, error) {
	value := strings.TrimSpace(rawID)
	if value == "" {
		return 0, domain.ErrNoCustomerSelected
	}
	id, err := snowflake.ParseString(value)
	if err != nil || id == 0 {
		return 0, domain.ErrCustomerNotFound
	}
	customer, err := s.customerRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, domain.ErrCustomerNotFound
	}
	return id, nil
}

func (s *Service) buildItems(invoiceID snowflake.ID, items []lineitem.Item, now time.Time) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, 0, len(items))
	for i, item := range items {
		out = append(out, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Position:    i,
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
			CreatedAt:   now,
		})
	}
	return out
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func normalizeTaxRate(applicable bool, rate decimal.Decimal) (decimal.Decimal, error) {
	if !applicable {
		return decimal.Zero, nil
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidTaxRate
	}
	return rate, nil
}
