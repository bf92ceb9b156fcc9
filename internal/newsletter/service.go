package newsletter

import (
	"context"
	"fmt"
	"regexp"

	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles newsletter signups.
type Service interface {
	// Subscribe records the email. Re-subscribing is a success, not a
	// conflict. The owner notification is best effort and never fails the
	// signup.
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	store  *Store
	mailer Mailer
	logg   *logger.Logger
}

// NewService builds a newsletter service. mailer may be nil when SMTP is
// not configured.
func NewService(store *Store, mailer Mailer, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("subscriber store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, mailer: mailer, logg: logg}, nil
}

func (s *service) Subscribe(ctx context.Context, email string) error {
	if !emailRe.MatchString(email) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	added, err := s.store.Add(email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record subscriber")
	}
	if !added {
		return nil
	}

	if s.mailer == nil {
		s.logg.Warn(ctx, "newsletter: mail not configured, skipping owner notification")
		return nil
	}
	if err := s.mailer.NotifySubscribed(email); err != nil {
		s.logg.Error(ctx, "newsletter: owner notification failed", err)
	}
	return nil
}
