package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/config"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	customerrepository "github.com/smallbiznis/billora/internal/customer/repository"
	"github.com/smallbiznis/billora/internal/document/format"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/invoice/repository"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
	quotationrepository "github.com/smallbiznis/billora/internal/quotation/repository"
	quotationservice "github.com/smallbiznis/billora/internal/quotation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	node       *snowflake.Node
	invoices   domain.Service
	quotations quotationdomain.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&quotationdomain.Quotation{},
		&quotationdomain.QuotationItem{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		QuotationNumberTemplate: format.DefaultQuotationNumberTemplate,
		InvoiceNumberTemplate:   format.DefaultInvoiceNumberTemplate,
	}
	customerRepo := customerrepository.Provide()
	quotationRepo := quotationrepository.Provide()

	quotations := quotationservice.New(quotationservice.Params{
		Config:       cfg,
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         quotationRepo,
		CustomerRepo: customerRepo,
	})
	invoices := New(Params{
		Config:        cfg,
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Repo:          repository.Provide(),
		CustomerRepo:  customerRepo,
		QuotationRepo: quotationRepo,
	})

	return testEnv{db: db, node: node, invoices: invoices, quotations: quotations}
}

func seedCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node) customerdomain.Customer {
	t.Helper()

	customer := customerdomain.Customer{
		ID:       node.Generate(),
		Name:     "Acme Traders",
		Email:    "billing@acme.test",
		Metadata: datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func itemInput(desc string, qty int64, rate int64) domain.LineItemInput {
	return domain.LineItemInput{
		Description: desc,
		Quantity:    qty,
		Rate:        decimal.NewFromInt(rate),
	}
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	customer := seedCustomer(t, env.db, env.node)
	ctx := context.Background()

	invoice, err := env.invoices.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:    customer.ID.String(),
		TaxApplicable: true,
		TaxRate:       decimal.NewFromInt(18),
		Items: []domain.LineItemInput{
			itemInput("Consulting", 2, 50),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
	assert.Nil(t, invoice.QuotationID)
	assert.True(t, invoice.SubtotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, invoice.TaxAmount.Equal(decimal.NewFromInt(18)))
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(118)))
	assert.True(t, invoice.DueDate.After(invoice.IssueDate))
}

func TestInvoiceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	customer := seedCustomer(t, env.db, env.node)
	ctx := context.Background()

	invoice, err := env.invoices.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)
	id := invoice.ID.String()

	sent, err := env.invoices.Send(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)

	// Resend is an idempotent no-op.
	sent, err = env.invoices.Send(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)

	paid, err := env.invoices.MarkPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)

	// Paid is terminal.
	_, err = env.invoices.Send(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)

	_, err = env.invoices.Update(ctx, domain.UpdateInvoiceRequest{
		ID:         id,
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 20)},
	})
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestConvertFromQuotation(t *testing.T) {
	env := newTestEnv(t)
	customer := seedCustomer(t, env.db, env.node)
	ctx := context.Background()

	quotation, err := env.quotations.Create(ctx, quotationdomain.CreateQuotationRequest{
		CustomerID:    customer.ID.String(),
		TaxApplicable: true,
		TaxRate:       decimal.NewFromInt(18),
		Notes:         "valid for 30 days",
		Items: []quotationdomain.LineItemInput{
			{Description: "Consulting", Quantity: 2, Rate: decimal.NewFromInt(50)},
			{Description: "Hosting", Quantity: 1, Rate: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)

	_, err = env.quotations.Send(ctx, quotation.ID.String())
	require.NoError(t, err)

	invoice, err := env.invoices.ConvertFromQuotation(ctx, quotation.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
	require.NotNil(t, invoice.QuotationID)
	assert.Equal(t, quotation.ID, *invoice.QuotationID)
	assert.Equal(t, quotation.CustomerID, invoice.CustomerID)
	assert.Equal(t, quotation.Notes, invoice.Notes)

	// Totals are carried over exactly, not recomputed.
	assert.True(t, invoice.SubtotalAmount.Equal(quotation.SubtotalAmount))
	assert.True(t, invoice.TaxAmount.Equal(quotation.TaxAmount))
	assert.True(t, invoice.TotalAmount.Equal(quotation.TotalAmount))

	// Items are deep copies with fresh identities.
	require.Len(t, invoice.Items, len(quotation.Items))
	for i, item := range invoice.Items {
		source := quotation.Items[i]
		assert.NotEqual(t, source.ID, item.ID)
		assert.Equal(t, invoice.ID, item.InvoiceID)
		assert.Equal(t, source.Description, item.Description)
		assert.Equal(t, source.Quantity, item.Quantity)
		assert.True(t, item.Rate.Equal(source.Rate))
		assert.True(t, item.Amount.Equal(source.Amount))
	}

	// The source quotation is untouched.
	after, err := env.quotations.GetByID(ctx, quotation.ID.String())
	require.NoError(t, err)
	assert.Equal(t, quotationdomain.QuotationStatusSent, after.Status)
	require.Len(t, after.Items, 2)
	assert.True(t, after.TotalAmount.Equal(quotation.TotalAmount))
}

func TestConvertFromQuotationMissingSource(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.invoices.ConvertFromQuotation(ctx, env.node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)

	_, err = env.invoices.ConvertFromQuotation(ctx, "not-a-number")
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}

func TestConvertedInvoiceEditableIndependently(t *testing.T) {
	env := newTestEnv(t)
	customer := seedCustomer(t, env.db, env.node)
	ctx := context.Background()

	quotation, err := env.quotations.Create(ctx, quotationdomain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items: []quotationdomain.LineItemInput{
			{Description: "Design", Quantity: 1, Rate: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	invoice, err := env.invoices.ConvertFromQuotation(ctx, quotation.ID.String())
	require.NoError(t, err)

	_, err = env.invoices.Update(ctx, domain.UpdateInvoiceRequest{
		ID:         invoice.ID.String(),
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 3, 10)},
	})
	require.NoError(t, err)

	after, err := env.quotations.GetByID(ctx, quotation.ID.String())
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.Equal(t, int64(1), after.Items[0].Quantity)
	assert.True(t, after.TotalAmount.Equal(decimal.NewFromInt(10)))
}
