package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/placelist/placelist/internal/model"
)

// Common errors for place repository operations.
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrPlaceIDExists = errors.New("place_id already exists")
)

// place.name is nullable in databases created by the original deployment.
const placeColumns = `id, place_id, COALESCE(name, ''), latitude, longitude, address, category,
	description, work_hours, website, phone, created_at`

// CreatePlace inserts a place and fills in its generated ID and creation time.
func (r *Repository) CreatePlace(ctx context.Context, place *model.Place) error {
	query := `
		INSERT INTO place (place_id, name, latitude, longitude, address, category, description, work_hours, website, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	category := place.Category
	if category == nil {
		category = []string{}
	}

	err := r.pool.QueryRow(ctx, query,
		place.PlaceID,
		place.Name,
		place.Latitude,
		place.Longitude,
		place.Address,
		pq.Array(category),
		place.Description,
		place.WorkHours,
		place.Website,
		place.Phone,
	).Scan(&place.ID, &place.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrPlaceIDExists
		}
		return fmt.Errorf("failed to create place: %w", err)
	}

	place.Category = category
	return nil
}

// GetPlaceByID retrieves a place by its internal ID.
func (r *Repository) GetPlaceByID(ctx context.Context, id int64) (*model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM place WHERE id = $1`

	place, err := scanPlace(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place by ID: %w", err)
	}

	return place, nil
}

// ListPlaces returns every place with the full field set, ordered by ID.
func (r *Repository) ListPlaces(ctx context.Context) ([]*model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM place ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	places := []*model.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}

// SearchPlacesByName returns the reduced projection of places whose name
// contains name, case-insensitively. LIKE metacharacters in name match literally.
func (r *Repository) SearchPlacesByName(ctx context.Context, name string) ([]model.PlaceSummary, error) {
	query := `
		SELECT id, COALESCE(name, ''), address, latitude, longitude
		FROM place
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, "%"+escapeLike(name)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// UpdatePlace applies a partial update and returns the stored result.
// An empty update returns the current row unchanged.
func (r *Repository) UpdatePlace(ctx context.Context, id int64, update model.PlaceUpdate) (*model.Place, error) {
	if update.IsEmpty() {
		return r.GetPlaceByID(ctx, id)
	}

	var sets []string
	args := []any{id}
	argIndex := 2

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if update.Category != nil {
		category := *update.Category
		if category == nil {
			category = []string{}
		}
		add("category", pq.Array(category))
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.WorkHours != nil {
		add("work_hours", *update.WorkHours)
	}
	if update.Website != nil {
		add("website", *update.Website)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}

	query := `UPDATE place SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + placeColumns

	place, err := scanPlace(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	return place, nil
}

func scanPlace(row pgx.Row) (*model.Place, error) {
	var place model.Place
	err := row.Scan(
		&place.ID,
		&place.PlaceID,
		&place.Name,
		&place.Latitude,
		&place.Longitude,
		&place.Address,
		&place.Category,
		&place.Description,
		&place.WorkHours,
		&place.Website,
		&place.Phone,
		&place.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if place.Category == nil {
		place.Category = []string{}
	}
	return &place, nil
}

func collectSummaries(rows pgx.Rows) ([]model.PlaceSummary, error) {
	places := []model.PlaceSummary{}
	for rows.Next() {
		var p model.PlaceSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan place summary: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}
