package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/config"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	customerrepository "github.com/smallbiznis/billora/internal/customer/repository"
	"github.com/smallbiznis/billora/internal/document/format"
	"github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/internal/quotation/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&domain.Quotation{},
		&domain.QuotationItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Config: config.Config{
			QuotationNumberTemplate: format.DefaultQuotationNumberTemplate,
		},
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		CustomerRepo: customerrepository.Provide(),
	})
	return svc, db, node
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

func TestCreateQuotation(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID:    customer.ID.String(),
		TaxApplicable: true,
		TaxRate:       decimal.NewFromInt(18),
		Notes:         "  payment due in 15 days  ",
		Items: []domain.LineItemInput{
			itemInput("Consulting", 2, 50),
			itemInput("", 0, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.QuotationStatusDraft, quotation.Status)
	assert.True(t, strings.HasPrefix(quotation.QuotationNumber, "QUO-"))
	assert.True(t, strings.HasSuffix(quotation.QuotationNumber, "-0001"))
	assert.Equal(t, "payment due in 15 days", quotation.Notes)

	// Totals come from the valid row only.
	assert.True(t, quotation.SubtotalAmount.Equal(decimal.NewFromInt(100)), quotation.SubtotalAmount.String())
	assert.True(t, quotation.TaxAmount.Equal(decimal.NewFromInt(18)), quotation.TaxAmount.String())
	assert.True(t, quotation.TotalAmount.Equal(decimal.NewFromInt(118)), quotation.TotalAmount.String())

	// All submitted rows are persisted, ordered by position.
	stored, err := svc.GetByID(ctx, quotation.ID.String())
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Consulting", stored.Items[0].Description)
	assert.Equal(t, 0, stored.Items[0].Position)
	assert.Equal(t, 1, stored.Items[1].Position)
}

func TestCreateQuotationSequencesPerDay(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(first.QuotationNumber, "-0001"))
	assert.True(t, strings.HasSuffix(second.QuotationNumber, "-0002"))
	assert.NotEqual(t, first.QuotationNumber, second.QuotationNumber)
}

func TestCreateQuotationCustomerValidation(t *testing.T) {
	svc, db, node := newTestService(t)
	_ = seedCustomer(t, db, node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateQuotationRequest{
		Items: []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	assert.ErrorIs(t, err, domain.ErrNoCustomerSelected)

	_, err = svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: node.Generate().String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateQuotationRequiresValidItems(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items: []domain.LineItemInput{
			itemInput("", 1, 10),
			itemInput("No rate", 1, 0),
		},
	})
	assert.ErrorIs(t, err, domain.ErrNoValidItems)
}

func TestQuotationLifecycle(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)
	id := quotation.ID.String()

	sent, err := svc.Send(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusSent, sent.Status)

	// Resend is an idempotent no-op.
	sent, err = svc.Send(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusSent, sent.Status)

	accepted, err := svc.Accept(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusAccepted, accepted.Status)

	// Accepted is terminal.
	_, err = svc.Send(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)

	// Re-applying the terminal status stays a no-op.
	accepted, err = svc.Accept(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusAccepted, accepted.Status)
}

func TestQuotationLifecycleRejectsBackwardTransition(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	_, err = svc.Send(ctx, quotation.ID.String())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, quotation.ID.String(), domain.QuotationStatusDraft)
	assert.ErrorIs(t, err, domain.ErrStatusTransition)

	_, err = svc.UpdateStatus(ctx, quotation.ID.String(), domain.QuotationStatus("VOID"))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestUpdateQuotationRecomputesTotals(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID:    customer.ID.String(),
		TaxApplicable: true,
		TaxRate:       decimal.NewFromInt(18),
		Items:         []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateQuotationRequest{
		ID:         quotation.ID.String(),
		CustomerID: customer.ID.String(),
		Items: []domain.LineItemInput{
			itemInput("Design", 2, 50),
			itemInput("Hosting", 1, 25),
		},
	})
	require.NoError(t, err)

	// Tax no longer applicable, items changed.
	assert.True(t, updated.SubtotalAmount.Equal(decimal.NewFromInt(125)), updated.SubtotalAmount.String())
	assert.True(t, updated.TaxAmount.IsZero())
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(125)), updated.TotalAmount.String())
	assert.Equal(t, quotation.QuotationNumber, updated.QuotationNumber)

	stored, err := svc.GetByID(ctx, quotation.ID.String())
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Hosting", stored.Items[1].Description)
}

func TestUpdateQuotationRejectsTerminal(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	_, err = svc.Accept(ctx, quotation.ID.String())
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateQuotationRequest{
		ID:         quotation.ID.String(),
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 20)},
	})
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestDeleteQuotation(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, quotation.ID.String()))

	_, err = svc.GetByID(ctx, quotation.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var remaining int64
	require.NoError(t, db.Model(&domain.QuotationItem{}).
		Where("quotation_id = ?", quotation.ID).
		Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, svc.Delete(ctx, quotation.ID.String()), domain.ErrNotFound)
}

func TestListQuotationsFiltersByStatus(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	draft, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	other, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Hosting", 1, 25)},
	})
	require.NoError(t, err)

	_, err = svc.Send(ctx, other.ID.String())
	require.NoError(t, err)

	status := domain.QuotationStatusDraft
	resp, err := svc.List(ctx, domain.ListQuotationRequest{Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Quotations, 1)
	assert.Equal(t, draft.ID, resp.Quotations[0].ID)
}

func TestListQuotationsFiltersByCreatedRange(t *testing.T) {
	svc, db, node := newTestService(t)
	customer := seedCustomer(t, db, node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Design", 1, 10)},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateQuotationRequest{
		CustomerID: customer.ID.String(),
		Items:      []domain.LineItemInput{itemInput("Hosting", 1, 25)},
	})
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	resp, err := svc.List(ctx, domain.ListQuotationRequest{CreatedFrom: &past, CreatedTo: &future})
	require.NoError(t, err)
	assert.Len(t, resp.Quotations, 2)

	resp, err = svc.List(ctx, domain.ListQuotationRequest{CreatedFrom: &future})
	require.NoError(t, err)
	assert.Empty(t, resp.Quotations)

	resp, err = svc.List(ctx, domain.ListQuotationRequest{CreatedTo: &past})
	require.NoError(t, err)
	assert.Empty(t, resp.Quotations)
}
