package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/billora/internal/company/domain"
	"github.com/smallbiznis/billora/internal/company/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestGetProfileBeforeSetup(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfileCreatesThenEdits(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Update(ctx, domain.UpdateProfileRequest{
		Name:              "Acme Studio",
		Email:             "hello@acme.studio",
		BankName:          "State Bank",
		BankAccountNumber: "1234567890",
		BankIFSC:          "SBIN0001234",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Acme Studio", created.Name)

	edited, err := svc.Update(ctx, domain.UpdateProfileRequest{
		Name:    "Acme Studio LLP",
		Address: "12 Industrial Estate",
	})
	require.NoError(t, err)

	// Still the same single row.
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Acme Studio LLP", edited.Name)
	assert.Equal(t, "12 Industrial Estate", edited.Address)

	current, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, edited.Name, current.Name)
}

func TestUpdateProfileRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), domain.UpdateProfileRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}
