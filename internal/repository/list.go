package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/placelist/placelist/internal/model"
)

// Common errors for list repository operations.
var (
	ErrListNotFound       = errors.New("list not found")
	ErrPlaceAlreadyInList = errors.New("place already in list")
	ErrListPlaceNotFound  = errors.New("place not in list")
	ErrAlreadyMember      = errors.New("user already a member of list")
	ErrMemberNotFound     = errors.New("user not a member of list")
	ErrLastAdmin          = errors.New("cannot remove the last admin of a list")
)

// CreateList inserts the list and its creator as admin member in one
// transaction. Either both rows exist afterwards or neither does.
func (r *Repository) CreateList(ctx context.Context, list *model.List) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO lists (list_name, id_user)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, list.Name, list.OwnerID).Scan(&list.ID, &list.CreatedAt); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO rel_user_list (id_user, id_list, is_admin)
			VALUES ($1, $2, TRUE)
		`, list.OwnerID, list.ID)
		return err
	})

	if err != nil {
		list.ID = 0
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

// GetListByID retrieves list metadata.
func (r *Repository) GetListByID(ctx context.Context, id int64) (*model.List, error) {
	query := `
		SELECT id, list_name, id_user, created_at
		FROM lists
		WHERE id = $1
	`

	var list model.List
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&list.ID,
		&list.Name,
		&list.OwnerID,
		&list.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list by ID: %w", err)
	}

	return &list, nil
}

// ListListsForUser returns the lists a user created or is a member of.
func (r *Repository) ListListsForUser(ctx context.Context, userID int64) ([]model.List, error) {
	query := `
		SELECT l.id, l.list_name, l.id_user, l.created_at
		FROM lists l
		WHERE l.id_user = $1
		   OR EXISTS (SELECT 1 FROM rel_user_list m WHERE m.id_list = l.id AND m.id_user = $1)
		ORDER BY l.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []model.List{}
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.Name, &l.OwnerID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

// ListPlacesInList returns the reduced projection of the places in a list,
// in insertion order.
func (r *Repository) ListPlacesInList(ctx context.Context, listID int64) ([]model.PlaceSummary, error) {
	query := `
		SELECT p.id, COALESCE(p.name, ''), p.address, p.latitude, p.longitude
		FROM rel_place_list pl
		JOIN place p ON p.id = pl.id_place
		WHERE pl.id_list = $1
		ORDER BY pl.id
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list places in list: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// ListRatedPlacesInList returns the places of a list with their review
// aggregate, computed in a single grouped query.
func (r *Repository) ListRatedPlacesInList(ctx context.Context, listID int64) ([]model.RatedPlace, error) {
	query := `
		SELECT p.id, COALESCE(p.name, ''), p.address, p.latitude, p.longitude, ` + ratingSQL + `
		FROM rel_place_list pl
		JOIN place p ON p.id = pl.id_place
		LEFT JOIN review rv ON rv.id_place = p.id
		WHERE pl.id_list = $1
		GROUP BY pl.id, p.id
		ORDER BY pl.id
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rated places: %w", err)
	}
	defer rows.Close()

	places := []model.RatedPlace{}
	for rows.Next() {
		var p model.RatedPlace
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Address,
			&p.Latitude,
			&p.Longitude,
			&p.Average,
			&p.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rated place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rated places: %w", err)
	}

	return places, nil
}

// ListMembers returns the members of a list in join order.
func (r *Repository) ListMembers(ctx context.Context, listID int64) ([]model.ListMember, error) {
	query := `
		SELECT u.id, u.username, m.is_admin
		FROM rel_user_list m
		JOIN users u ON u.id = m.id_user
		WHERE m.id_list = $1
		ORDER BY m.id
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []model.ListMember{}
	for rows.Next() {
		var m model.ListMember
		if err := rows.Scan(&m.UserID, &m.Username, &m.IsAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// GetMembership reports whether userID belongs to listID and with which role.
func (r *Repository) GetMembership(ctx context.Context, listID, userID int64) (model.ListMember, error) {
	query := `
		SELECT u.id, u.username, m.is_admin
		FROM rel_user_list m
		JOIN users u ON u.id = m.id_user
		WHERE m.id_list = $1 AND m.id_user = $2
	`

	var m model.ListMember
	err := r.pool.QueryRow(ctx, query, listID, userID).Scan(&m.UserID, &m.Username, &m.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ListMember{}, ErrMemberNotFound
		}
		return model.ListMember{}, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

// AddPlaceToList links a place to a list. The pair is unique.
func (r *Repository) AddPlaceToList(ctx context.Context, listID, placeID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rel_place_list (id_place, id_list)
		VALUES ($1, $2)
	`, placeID, listID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrPlaceAlreadyInList
		}
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to add place to list: %w", err)
	}

	return nil
}

// AddListMember adds a user to a list. The pair is unique.
func (r *Repository) AddListMember(ctx context.Context, listID, userID int64, isAdmin bool) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rel_user_list (id_user, id_list, is_admin)
		VALUES ($1, $2, $3)
	`, userID, listID, isAdmin)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMember
		}
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to add list member: %w", err)
	}

	return nil
}

// RemovePlaceFromList unlinks a place from a list.
func (r *Repository) RemovePlaceFromList(ctx context.Context, listID, placeID int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM rel_place_list
		WHERE id_list = $1 AND id_place = $2
	`, listID, placeID)
	if err != nil {
		return fmt.Errorf("failed to remove place from list: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrListPlaceNotFound
	}

	return nil
}

// RemoveListMember removes a membership. The list row is locked so two
// concurrent removals cannot both pass the last-admin check.
func (r *Repository) RemoveListMember(ctx context.Context, listID, userID int64) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM lists WHERE id = $1 FOR UPDATE`, listID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrListNotFound
			}
			return err
		}

		var isAdmin bool
		if err := tx.QueryRow(ctx, `
			SELECT is_admin FROM rel_user_list WHERE id_list = $1 AND id_user = $2
		`, listID, userID).Scan(&isAdmin); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrMemberNotFound
			}
			return err
		}

		if isAdmin {
			var admins int
			if err := tx.QueryRow(ctx, `
				SELECT COUNT(*) FROM rel_user_list WHERE id_list = $1 AND is_admin
			`, listID).Scan(&admins); err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}

		_, err := tx.Exec(ctx, `DELETE FROM rel_user_list WHERE id_list = $1 AND id_user = $2`, listID, userID)
		return err
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrListNotFound), errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrLastAdmin):
		return err
	default:
		return fmt.Errorf("failed to remove list member: %w", err)
	}
}
