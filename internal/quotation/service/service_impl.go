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
	"github.com/smallbiznis/billora/internal/lineitem"
	"github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/pkg/db"
	"github.com/smallbiznis/billora/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config       config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
}

type Service struct {
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	customerRepo customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:          p.Config,
		db:           p.DB,
		log:          p.Log.Named("quotation.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateQuotationRequest) (domain.Quotation, error) {
	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.Quotation{}, err
	}

	taxRate, err := normalizeTaxRate(req.TaxApplicable, req.TaxRate)
	if err != nil {
		return domain.Quotation{}, err
	}

	items := domain.Items(req.Items)
	totals := lineitem.Compute(items, lineitem.TaxConfig{
		Applicable:  req.TaxApplicable,
		RatePercent: taxRate,
	})
	if len(lineitem.ValidOf(items)) == 0 {
		return domain.Quotation{}, domain.ErrNoValidItems
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	validUntil := issueDate.AddDate(0, 0, 30)
	if req.ValidUntil != nil {
		validUntil = req.ValidUntil.UTC()
	}

	quotation := domain.Quotation{
		ID:             s.genID.Generate(),
		CustomerID:     customerID,
		Status:         domain.QuotationStatusDraft,
		IssueDate:      issueDate,
		ValidUntil:     validUntil,
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
	for i := range quotation.Items {
		quotation.Items[i].QuotationID = quotation.ID
	}

	// Concurrent inserts on the same day can race on the unique number
	// index; retry with a fresh sequence.
	for attempt := 0; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seq, err := s.repo.NextSequence(ctx, tx, issueDate)
			if err != nil {
				return err
			}
			number, err := format.FormatDocumentNumber(s.cfg.QuotationNumberTemplate, issueDate, seq)
			if err != nil {
				return err
			}
			quotation.QuotationNumber = number
			return s.repo.Insert(ctx, tx, &quotation)
		})
		if err == nil {
			break
		}
		if db.IsDuplicateKeyErr(err) && attempt < 2 {
			continue
		}
		return domain.Quotation{}, err
	}

	s.log.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("quotation_number", quotation.QuotationNumber),
	)
	return quotation, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateQuotationRequest) (domain.Quotation, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Quotation{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Quotation{}, err
	}
	if existing == nil {
		return domain.Quotation{}, domain.ErrNotFound
	}
	if existing.Status.Terminal() {
		return domain.Quotation{}, domain.ErrTerminalStatus
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.Quotation{}, err
	}

	taxRate, err := normalizeTaxRate(req.TaxApplicable, req.TaxRate)
	if err != nil {
		return domain.Quotation{}, err
	}

	items := domain.Items(req.Items)
	totals := lineitem.Compute(items, lineitem.TaxConfig{
		Applicable:  req.TaxApplicable,
		RatePercent: taxRate,
	})
	if len(lineitem.ValidOf(items)) == 0 {
		return domain.Quotation{}, domain.ErrNoValidItems
	}

	now := time.Now().UTC()
	existing.CustomerID = customerID
	if req.IssueDate != nil {
		existing.IssueDate = req.IssueDate.UTC()
	}
	if req.ValidUntil != nil {
		existing.ValidUntil = req.ValidUntil.UTC()
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
		return domain.Quotation{}, err
	}

	return *existing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListQuotationRequest) (domain.ListQuotationResponse, error) {
	if req.Status != nil && !req.Status.Known() {
		return domain.ListQuotationResponse{}, domain.ErrUnknownStatus
	}

	filter := domain.ListQuotationFilter{
		Status:      req.Status,
		CustomerID:  strings.TrimSpace(req.CustomerID),
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
		return domain.ListQuotationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(quotation *domain.Quotation) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        quotation.ID.String(),
			CreatedAt: quotation.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	quotations := make([]domain.Quotation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		quotations = append(quotations, *item)
	}

	resp := domain.ListQuotationResponse{Quotations: quotations}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Quotation, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Quotation{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Quotation{}, err
	}
	if item == nil {
		return domain.Quotation{}, domain.ErrNotFound
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

func (s *Service) Send(ctx context.Context, id string) (domain.Quotation, error) {
	return s.UpdateStatus(ctx, id, domain.QuotationStatusSent)
}

func (s *Service) Accept(ctx context.Context, id string) (domain.Quotation, error) {
	return s.UpdateStatus(ctx, id, domain.QuotationStatusAccepted)
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, status domain.QuotationStatus) (domain.Quotation, error) {
	if !status.Known() {
		return domain.Quotation{}, domain.ErrUnknownStatus
	}

	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Quotation{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Quotation{}, err
	}
	if existing == nil {
		return domain.Quotation{}, domain.ErrNotFound
	}

	// Re-applying the current status is a no-op, not an error.
	if existing.Status == status {
		return *existing, nil
	}
	if existing.Status.Terminal() {
		return domain.Quotation{}, domain.ErrTerminalStatus
	}
	if !existing.Status.CanTransitionTo(status) {
		return domain.Quotation{}, domain.ErrStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, s.db, id, status); err != nil {
		return domain.Quotation{}, err
	}

	s.log.Info("quotation status updated",
		zap.String("quotation_id", existing.ID.String()),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(status)),
	)

	existing.Status = status
	existing.UpdatedAt = time.Now().UTC()
	return *existing, nil
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

func (s *Service) buildItems(quotationID snowflake.ID, items []lineitem.Item, now time.Time) []domain.QuotationItem {
	out := make([]domain.QuotationItem, 0, len(items))
	for i, item := range items {
		out = append(out, domain.QuotationItem{
			ID:          s.genID.Generate(),
			QuotationID: quotationID,
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
