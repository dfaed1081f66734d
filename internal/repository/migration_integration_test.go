//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placelist/placelist/internal/testutil"
)

// ============================================================================
// Migration Integration Tests
// ============================================================================

func TestIntegrationMigration_ApplyAllTables(t *testing.T) {
	ctx, pool := testutil.NewTestDB(t)

	tables := []string{
		"users",
		"place",
		"review",
		"lists",
		"rel_user_list",
		"rel_place_list",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			exists, err := tableExists(ctx, pool, table)
			if err != nil {
				t.Fatalf("tableExists failed: %v", err)
			}
			if !exists {
				t.Errorf("Table %q should exist after migrations", table)
			}
		})
	}
}

func TestIntegrationMigration_PlaceTableSchema(t *testing.T) {
	ctx, pool := testutil.NewTestDB(t)

	expectedColumns := []string{
		"id",
		"place_id",
		"name",
		"latitude",
		"longitude",
		"address",
		"category",
		"description",
		"work_hours",
		"website",
		"phone",
		"created_at",
	}

	for _, col := range expectedColumns {
		t.Run(col, func(t *testing.T) {
			exists, err := columnExists(ctx, pool, "place", col)
			if err != nil {
				t.Fatalf("columnExists failed: %v", err)
			}
			if !exists {
				t.Errorf("Column %q should exist in place table", col)
			}
		})
	}
}

func TestIntegrationMigration_MigrateIsIdempotent(t *testing.T) {
	ctx, pool := testutil.NewTestDB(t)
	repo := NewFromPool(pool)

	// ResetSchema leaves tables but no schema_migrations; the first run
	// adopts them through IF NOT EXISTS.
	applied, err := repo.Migrate(ctx)
	if err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	if len(applied) != 1 || applied[0] != "000001_init" {
		t.Errorf("first Migrate applied %v, want [000001_init]", applied)
	}

	applied, err = repo.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second Migrate applied %v, want none", applied)
	}
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, tableName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, tableName).Scan(&exists)
	return exists, err
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, tableName, columnName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2
		)
	`, tableName, columnName).Scan(&exists)
	return exists, err
}
