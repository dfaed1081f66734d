package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(wrapped) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 is not a unique violation")
	}
	if isUniqueViolation(errors.New("duplicate key value violates unique constraint")) {
		t.Error("plain errors must not be classified by message")
	}
	if isUniqueViolation(nil) {
		t.Error("nil is not a violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	if !isForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23503"})) {
		t.Error("expected 23503 to be a foreign key violation")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 is not a foreign key violation")
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"cafe":    "cafe",
		"100%":    `100\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
		`%_\`:     `\%\_\\`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	migrations, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations() error: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	first := migrations[0]
	if first.Version != "000001_init" {
		t.Errorf("first version = %s, want 000001_init", first.Version)
	}
	if first.Up == "" || first.Down == "" {
		t.Error("expected both up and down SQL")
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].Version >= migrations[i].Version {
			t.Errorf("migrations not ordered: %s before %s", migrations[i-1].Version, migrations[i].Version)
		}
	}
}
