package newsletter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

type stubMailer struct {
	notified []string
	err      error
}

func (m *stubMailer) NotifySubscribed(email string) error {
	m.notified = append(m.notified, email)
	return m.err
}

func newNewsletterService(t *testing.T, mailer Mailer) (Service, *Store) {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "newsletter.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(store, mailer, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestSubscribeRecordsAndNotifies(t *testing.T) {
	t.Parallel()
	mailer := &stubMailer{}
	svc, store := newNewsletterService(t, mailer)

	if err := svc.Subscribe(context.Background(), "june@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	emails, err := store.Emails()
	if err != nil {
		t.Fatalf("emails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "june@example.com" {
		t.Fatalf("emails = %v", emails)
	}
	if len(mailer.notified) != 1 || mailer.notified[0] != "june@example.com" {
		t.Fatalf("notified = %v", mailer.notified)
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	t.Parallel()
	mailer := &stubMailer{}
	svc, store := newNewsletterService(t, mailer)

	for i := 0; i < 3; i++ {
		if err := svc.Subscribe(context.Background(), "june@example.com"); err != nil {
			t.Fatalf("subscribe %d: %v", i, err)
		}
	}

	emails, _ := store.Emails()
	if len(emails) != 1 {
		t.Fatalf("emails = %v, want one entry", emails)
	}
	// Only the first signup notifies the owner.
	if len(mailer.notified) != 1 {
		t.Fatalf("notifications = %d, want 1", len(mailer.notified))
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	t.Parallel()
	svc, store := newNewsletterService(t, &stubMailer{})

	for _, email := range []string{"", "no-at-sign", "a@b", "two @example.com"} {
		err := svc.Subscribe(context.Background(), email)
		if err == nil {
			t.Fatalf("expected error for %q", email)
		}
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("error for %q = %v, want validation code", email, err)
		}
	}

	emails, _ := store.Emails()
	if len(emails) != 0 {
		t.Fatalf("emails = %v, want empty", emails)
	}
}

func TestSubscribeSurvivesMailFailure(t *testing.T) {
	t.Parallel()
	mailer := &stubMailer{err: fmt.Errorf("smtp down")}
	svc, store := newNewsletterService(t, mailer)

	if err := svc.Subscribe(context.Background(), "june@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	emails, _ := store.Emails()
	if len(emails) != 1 {
		t.Fatal("subscriber must be recorded despite mail failure")
	}
}

func TestSubscribeWithoutMailerConfigured(t *testing.T) {
	t.Parallel()
	svc, store := newNewsletterService(t, nil)

	if err := svc.Subscribe(context.Background(), "june@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	emails, _ := store.Emails()
	if len(emails) != 1 {
		t.Fatal("subscriber must be recorded without a mailer")
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "newsletter.json")

	first, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := first.Add("june@example.com"); err != nil {
		t.Fatalf("add: %v", err)
	}

	second, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	emails, err := second.Emails()
	if err != nil {
		t.Fatalf("emails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "june@example.com" {
		t.Fatalf("emails = %v", emails)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) == "" || raw[0] != '{' {
		t.Fatalf("unexpected file shape: %s", raw)
	}
}
