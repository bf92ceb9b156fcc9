package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jtbakery/storefront-backend/pkg/db/models"
)

// Repository exposes persistence for billing accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an account repository backed by the provided DB.
func NewRepository(db *gorm.DB) Repository {
	if db == nil {
		return nil
	}
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindByEmail returns the account for the normalized email, or nil when no
// row exists.
func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByStripeCustomerID returns the account linked to the payment provider
// customer, or nil when no row exists.
func (r *repository) FindByStripeCustomerID(ctx context.Context, customerID string) (*models.Account, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, nil
	}
	var account models.Account
	err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) Create(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.Email = NormalizeEmail(account.Email)
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// NormalizeEmail lowercases and trims an address so lookups are stable
// across webhook payloads and user input.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
