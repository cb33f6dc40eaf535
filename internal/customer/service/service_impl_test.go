package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/billora/internal/customer/domain"
	"github.com/smallbiznis/billora/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func TestCreateCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:      "  Acme Traders  ",
		Email:     "billing@acme.test",
		Phone:     "+91 98765 43210",
		Company:   "Acme Pvt Ltd",
		GSTNumber: "29ABCDE1234F1Z5",
	})
	require.NoError(t, err)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Acme Traders", customer.Name)
	assert.Equal(t, "billing@acme.test", customer.Email)
	assert.Equal(t, "29ABCDE1234F1Z5", customer.GSTNumber)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Name:  "Acme",
		Email: "not-an-email",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUpdateCustomer(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:    customer.ID.String(),
		Name:  "Acme Traders",
		Email: "hello@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", updated.Name)
	assert.Equal(t, "hello@acme.test", updated.Email)

	_, err = svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:   node.Generate().String(),
		Name: "Ghost",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCustomerByID(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: customer.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDeleteCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID.String()))
	assert.ErrorIs(t, svc.Delete(ctx, customer.ID.String()), domain.ErrNotFound)
}

func TestListCustomersPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListCustomerRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
	assert.True(t, resp.PageInfo.HasMore)
	assert.NotEmpty(t, resp.PageInfo.NextPageToken)
}
