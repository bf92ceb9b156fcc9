package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("validation should map to 400, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeDependency); meta.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("dependency should map to 502, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("UNKNOWN")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should fall back to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(CodeDependency, cause, "create payment intent")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause via errors.Is")
	}
	if typed := As(err); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("unexpected typed error: %v", typed)
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeInternal, nil, "no cause")
	if err.Unwrap() != nil {
		t.Fatal("nil cause should not be wrapped")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeValidation, errors.New("inner"), "outer")
	dump := Dump(err)

	if dump.Code != CodeValidation {
		t.Fatalf("unexpected code: %v", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(dump.Chain))
	}
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		Detail:         "Key (email)=(june@example.com) already exists.",
		TableName:      "accounts",
		ColumnName:     "email",
		ConstraintName: "idx_accounts_email",
	}
	dump := Dump(Wrap(CodeConflict, pgErr, "create account"))

	if dump.PGCode != "23505" || dump.PGConstraint != "idx_accounts_email" {
		t.Fatalf("unexpected pg fields: %+v", dump)
	}
	if dump.PGTable != "accounts" || dump.PGColumn != "email" {
		t.Fatalf("unexpected pg table/column: %+v", dump)
	}
	if dump.PGMessage == "" || dump.PGDetail == "" {
		t.Fatalf("expected message and detail populated: %+v", dump)
	}
}

func TestAsOnForeignError(t *testing.T) {
	if As(errors.New("plain")) != nil {
		t.Fatal("plain error should not convert")
	}
}
