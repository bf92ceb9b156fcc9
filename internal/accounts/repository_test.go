package accounts

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jtbakery/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Account{}))
	return conn
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(repo, logg)
	require.NoError(t, err)
	return svc
}

func TestRepositoryFindByEmailNormalizes(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Account{Email: " June@Example.COM "}))

	account, err := repo.FindByEmail(ctx, "june@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "june@example.com", account.Email)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActivateFromCheckoutCreatesThenUpdates(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc := newTestService(t, repo)
	ctx := context.Background()

	account, err := svc.ActivateFromCheckout(ctx, "june@example.com", "cus_123")
	require.NoError(t, err)
	assert.True(t, account.Pro)
	require.NotNil(t, account.StripeCustomerID)
	assert.Equal(t, "cus_123", *account.StripeCustomerID)

	// A second completed checkout for the same address must not create a
	// duplicate row.
	again, err := svc.ActivateFromCheckout(ctx, "June@example.com", "cus_123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)

	var count int64
	require.NoError(t, newCountQuery(repo).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func newCountQuery(repo Repository) *gorm.DB {
	return repo.(*repository).db.Model(&models.Account{})
}

func TestSetProByCustomerFlipsFlag(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.ActivateFromCheckout(ctx, "june@example.com", "cus_123")
	require.NoError(t, err)

	require.NoError(t, svc.SetProByCustomer(ctx, "cus_123", false))
	account, err := repo.FindByStripeCustomerID(ctx, "cus_123")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.False(t, account.Pro)

	require.NoError(t, svc.SetProByCustomer(ctx, "cus_123", true))
	account, err = repo.FindByStripeCustomerID(ctx, "cus_123")
	require.NoError(t, err)
	assert.True(t, account.Pro)
}

func TestSetProByCustomerIgnoresUnknownCustomer(t *testing.T) {
	svc := newTestService(t, NewRepository(newTestDB(t)))

	assert.NoError(t, svc.SetProByCustomer(context.Background(), "cus_ghost", false))
}

func TestGetByEmailNotFound(t *testing.T) {
	svc := newTestService(t, NewRepository(newTestDB(t)))

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
