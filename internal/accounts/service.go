package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/jtbakery/storefront-backend/pkg/db/models"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// Service maintains the pro flag on accounts as billing events arrive.
type Service interface {
	// ActivateFromCheckout upserts the account for a completed checkout and
	// turns the pro flag on.
	ActivateFromCheckout(ctx context.Context, email, stripeCustomerID string) (*models.Account, error)
	// SetProByCustomer flips the pro flag for the account linked to the
	// payment provider customer. Unknown customers are a logged no-op:
	// webhook retries must not fail on rows we never created.
	SetProByCustomer(ctx context.Context, stripeCustomerID string, pro bool) error
	// GetByEmail returns the account for the address, or a not-found error.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds an account service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("account repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ActivateFromCheckout(ctx context.Context, email, stripeCustomerID string) (*models.Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	stripeCustomerID = strings.TrimSpace(stripeCustomerID)

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = &models.Account{Email: email, Pro: true}
		if stripeCustomerID != "" {
			account.StripeCustomerID = &stripeCustomerID
		}
		if err := s.repo.Create(ctx, account); err != nil {
			return nil, err
		}
		s.logg.Info(s.logg.WithField(ctx, "account_id", account.ID.String()), "account created from checkout")
		return account, nil
	}

	account.Pro = true
	if stripeCustomerID != "" {
		account.StripeCustomerID = &stripeCustomerID
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) SetProByCustomer(ctx context.Context, stripeCustomerID string, pro bool) error {
	stripeCustomerID = strings.TrimSpace(stripeCustomerID)
	if stripeCustomerID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	account, err := s.repo.FindByStripeCustomerID(ctx, stripeCustomerID)
	if err != nil {
		return err
	}
	if account == nil {
		s.logg.Warn(s.logg.WithField(ctx, "customer_id", stripeCustomerID), "billing event for unknown customer")
		return nil
	}
	if account.Pro == pro {
		return nil
	}
	account.Pro = pro
	return s.repo.Update(ctx, account)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return account, nil
}
