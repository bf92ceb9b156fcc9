package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// Service owns cart state per storefront session. Snapshot read/write
// failures degrade to an empty cart and are never surfaced to the caller.
type Service interface {
	Get(ctx context.Context, sessionID string) (*State, Totals)
	AddItem(ctx context.Context, sessionID string, item Item) (*State, Totals, error)
	UpdateQty(ctx context.Context, sessionID, itemID string, qty int) (*State, Totals)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*State, Totals)
	SetCustomer(ctx context.Context, sessionID string, customer Customer) (*State, Totals)
	SetShipping(ctx context.Context, sessionID string, shipping Shipping) (*State, Totals, error)
	Clear(ctx context.Context, sessionID string) (*State, Totals)
	FlatFee() decimal.Decimal
}

type service struct {
	store   *SnapshotStore
	flatFee decimal.Decimal
	logg    *logger.Logger
}

// NewService builds the cart service with the configured flat delivery fee.
func NewService(store *SnapshotStore, flatFee decimal.Decimal, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if flatFee.IsNegative() {
		return nil, fmt.Errorf("flat fee must be non-negative")
	}
	return &service{store: store, flatFee: flatFee, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*State, Totals) {
	state := s.load(ctx, sessionID)
	return state, ComputeTotals(state, s.flatFee)
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Item) (*State, Totals, error) {
	if item.ID == "" || item.Name == "" {
		return nil, Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "item id and name are required")
	}
	if item.Qty < 1 {
		return nil, Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if item.Price.IsNegative() {
		return nil, Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	state := s.load(ctx, sessionID)
	state.AddItem(item)
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee), nil
}

func (s *service) UpdateQty(ctx context.Context, sessionID, itemID string, qty int) (*State, Totals) {
	state := s.load(ctx, sessionID)
	state.UpdateQty(itemID, qty)
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee)
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (*State, Totals) {
	state := s.load(ctx, sessionID)
	state.RemoveItem(itemID)
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee)
}

func (s *service) SetCustomer(ctx context.Context, sessionID string, customer Customer) (*State, Totals) {
	state := s.load(ctx, sessionID)
	state.SetCustomer(customer)
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee)
}

func (s *service) SetShipping(ctx context.Context, sessionID string, shipping Shipping) (*State, Totals, error) {
	if !ValidMethod(shipping.Method) {
		return nil, Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown shipping method")
	}
	state := s.load(ctx, sessionID)
	state.SetShipping(shipping)
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*State, Totals) {
	state := s.load(ctx, sessionID)
	state.Clear()
	s.persist(ctx, sessionID, state)
	return state, ComputeTotals(state, s.flatFee)
}

func (s *service) FlatFee() decimal.Decimal {
	return s.flatFee
}

func (s *service) load(ctx context.Context, sessionID string) *State {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot load failed, starting empty")
		}
		return NewState()
	}
	if state == nil {
		return NewState()
	}
	return state
}

func (s *service) persist(ctx context.Context, sessionID string, state *State) {
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart snapshot save failed")
		}
	}
}
