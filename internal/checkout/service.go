package checkout

import (
	"context"
	"sync"

	"github.com/jtbakery/storefront-backend/internal/cart"
	"github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// IntentCreator acquires a payment token for the given amount in minor
// units. Satisfied by the payments service.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// View is the wizard state returned to the storefront.
type View struct {
	Step             Step        `json:"step"`
	CustomerComplete bool        `json:"customerComplete"`
	ShippingComplete bool        `json:"shippingComplete"`
	UnlockedUpTo     Step        `json:"unlockedUpTo"`
	ClientSecret     string      `json:"clientSecret,omitempty"`
	PaymentReady     bool        `json:"paymentReady"`
	Totals           cart.Totals `json:"totals"`
}

// Service drives the per-session checkout wizard. Wizard position and the
// held payment token live in process memory only; a restart puts every
// session back on the first step, mirroring a page reload. The cart itself
// survives in its snapshot store.
type Service interface {
	State(ctx context.Context, sessionID string) View
	Next(ctx context.Context, sessionID string) (View, error)
	Back(ctx context.Context, sessionID string) View
	Goto(ctx context.Context, sessionID string, target Step) (View, error)
	Reset(sessionID string)
}

type session struct {
	mu           sync.Mutex
	step         Step
	clientSecret string
}

type service struct {
	// mu guards the sessions map only; each wizard session carries its
	// own lock so a slow payment call stalls just that visitor.
	mu       sync.Mutex
	sessions map[string]*session

	carts   cart.Service
	intents IntentCreator
	logg    *logger.Logger
}

func NewService(carts cart.Service, intents IntentCreator, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires a cart service")
	}
	if intents == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires an intent creator")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "checkout service requires a logger")
	}
	return &service{
		sessions: make(map[string]*session),
		carts:    carts,
		intents:  intents,
		logg:     logg,
	}, nil
}

func (s *service) State(ctx context.Context, sessionID string) View {
	st, totals := s.carts.Get(ctx, sessionID)
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess, st, totals)
}

func (s *service) Next(ctx context.Context, sessionID string) (View, error) {
	st, totals := s.carts.Get(ctx, sessionID)
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.step {
	case StepCustomer:
		if !CustomerComplete(st) {
			return View{}, errors.New(errors.CodeValidation, "customer details are incomplete")
		}
	case StepShipping:
		if !ShippingComplete(st) {
			return View{}, errors.New(errors.CodeValidation, "shipping details are incomplete")
		}
	case StepReview:
		return View{}, errors.New(errors.CodeValidation, "already on the final step")
	}
	sess.step = Steps[Index(sess.step)+1]
	s.afterMove(ctx, sess, totals)
	return s.view(sess, st, totals), nil
}

func (s *service) Back(ctx context.Context, sessionID string) View {
	st, totals := s.carts.Get(ctx, sessionID)
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if i := Index(sess.step); i > 0 {
		sess.step = Steps[i-1]
	}
	return s.view(sess, st, totals)
}

func (s *service) Goto(ctx context.Context, sessionID string, target Step) (View, error) {
	if !Valid(target) {
		return View{}, errors.New(errors.CodeValidation, "unknown checkout step")
	}
	st, totals := s.carts.Get(ctx, sessionID)
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if Index(target) > Index(UnlockedUpTo(st)) {
		return View{}, errors.New(errors.CodeValidation, "step is not unlocked yet")
	}
	sess.step = target
	s.afterMove(ctx, sess, totals)
	return s.view(sess, st, totals), nil
}

func (s *service) Reset(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// get returns the live wizard session, creating one on the first step.
func (s *service) get(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{step: StepCustomer}
		s.sessions[sessionID] = sess
	}
	return sess
}

// afterMove runs the payment-step side effect: landing on payment with no
// held token and a positive total acquires one. A token already in hand is
// reused, and a free order never reaches the payment provider. Acquisition
// failure keeps the wizard on payment with no token; the next arrival on
// the step tries again, there is no scheduled retry. The caller holds the
// session's lock, so at most one acquisition is in flight per session and
// other sessions stay unblocked while the provider call runs.
func (s *service) afterMove(ctx context.Context, sess *session, totals cart.Totals) {
	if sess.step != StepPayment || sess.clientSecret != "" {
		return
	}
	amount := totals.MinorUnits()
	if amount <= 0 {
		return
	}
	secret, err := s.intents.CreateIntent(ctx, amount, "usd")
	if err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"error": err.Error(), "amount": amount})
		s.logg.Warn(ctx, "checkout: payment intent acquisition failed")
		return
	}
	sess.clientSecret = secret
}

func (s *service) view(sess *session, st *cart.State, totals cart.Totals) View {
	return View{
		Step:             sess.step,
		CustomerComplete: CustomerComplete(st),
		ShippingComplete: ShippingComplete(st),
		UnlockedUpTo:     UnlockedUpTo(st),
		ClientSecret:     sess.clientSecret,
		PaymentReady:     sess.clientSecret != "",
		Totals:           totals,
	}
}
