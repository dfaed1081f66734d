package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/repository"
)

// ListStore is the persistence ListService depends on.
type ListStore interface {
	CreateList(ctx context.Context, list *model.List) error
	GetListByID(ctx context.Context, id int64) (*model.List, error)
	ListListsForUser(ctx context.Context, userID int64) ([]model.List, error)
	ListPlacesInList(ctx context.Context, listID int64) ([]model.PlaceSummary, error)
	ListRatedPlacesInList(ctx context.Context, listID int64) ([]model.RatedPlace, error)
	ListMembers(ctx context.Context, listID int64) ([]model.ListMember, error)
	GetMembership(ctx context.Context, listID, userID int64) (model.ListMember, error)
	AddPlaceToList(ctx context.Context, listID, placeID int64) error
	AddListMember(ctx context.Context, listID, userID int64, isAdmin bool) error
	RemovePlaceFromList(ctx context.Context, listID, placeID int64) error
	RemoveListMember(ctx context.Context, listID, userID int64) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// ListService handles lists, their places and their members.
type ListService struct {
	store   ListStore
	metrics metrics.Recorder
}

// NewListService creates a new ListService.
func NewListService(store ListStore, recorder metrics.Recorder) *ListService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ListService{store: store, metrics: recorder}
}

// Create makes a list owned by userID, with userID as its first admin member.
func (s *ListService) Create(ctx context.Context, userID int64, name string) (*model.List, error) {
	if name == "" {
		return nil, invalidInput("List name is required")
	}
	if len(name) > maxShortFieldLength {
		return nil, invalidInput(fmt.Sprintf("List name must be at most %d characters", maxShortFieldLength))
	}

	list := &model.List{Name: name, OwnerID: userID}
	if err := s.store.CreateList(ctx, list); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.metrics.IncListCreated()
	return list, nil
}

// ListForUser returns the lists userID owns or belongs to.
func (s *ListService) ListForUser(ctx context.Context, userID int64) ([]model.List, error) {
	return s.store.ListListsForUser(ctx, userID)
}

// GetDetails returns a list with its places and members.
func (s *ListService) GetDetails(ctx context.Context, listID int64) (*model.ListDetails, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}

	places, err := s.store.ListPlacesInList(ctx, listID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.ListMembers(ctx, listID)
	if err != nil {
		return nil, err
	}

	return &model.ListDetails{List: *list, Places: places, Users: users}, nil
}

// AddPlace links a place to a list. Adding the same place twice is a conflict.
func (s *ListService) AddPlace(ctx context.Context, listID, placeID int64) error {
	if placeID <= 0 {
		return invalidInput("Place ID is required")
	}

	if err := s.store.AddPlaceToList(ctx, listID, placeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlaceAlreadyInList):
			return ErrPlaceAlreadyInList
		case errors.Is(err, repository.ErrReferenceNotFound):
			return invalidInput("List or place does not exist")
		default:
			return err
		}
	}

	return nil
}

// ListPlaces returns the places of a list with their review aggregates.
func (s *ListService) ListPlaces(ctx context.Context, listID int64) ([]model.RatedPlace, error) {
	return s.store.ListRatedPlacesInList(ctx, listID)
}

// ListUsers returns the members of a list.
func (s *ListService) ListUsers(ctx context.Context, listID int64) ([]model.ListMember, error) {
	return s.store.ListMembers(ctx, listID)
}

// AddMember adds the user named username to a list as a regular member.
// Only admins of the list may do this.
func (s *ListService) AddMember(ctx context.Context, actorID, listID int64, username string) (*model.ListMember, error) {
	if username == "" {
		return nil, invalidInput("Username is required")
	}

	if err := s.requireRole(ctx, actorID, listID, true); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.store.AddListMember(ctx, listID, user.ID, false); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	return &model.ListMember{UserID: user.ID, Username: user.Username}, nil
}

// RemovePlace unlinks a place from a list. Any member may do this.
func (s *ListService) RemovePlace(ctx context.Context, actorID, listID, placeID int64) error {
	if err := s.requireRole(ctx, actorID, listID, false); err != nil {
		return err
	}

	if err := s.store.RemovePlaceFromList(ctx, listID, placeID); err != nil {
		if errors.Is(err, repository.ErrListPlaceNotFound) {
			return ErrListPlaceNotFound
		}
		return err
	}

	return nil
}

// RemoveMember removes a member from a list. Only admins may do this, and the
// last admin cannot be removed.
func (s *ListService) RemoveMember(ctx context.Context, actorID, listID, userID int64) error {
	if err := s.requireRole(ctx, actorID, listID, true); err != nil {
		return err
	}

	if err := s.store.RemoveListMember(ctx, listID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return ErrMemberNotFound
		case errors.Is(err, repository.ErrLastAdmin):
			return ErrLastAdmin
		case errors.Is(err, repository.ErrListNotFound):
			return ErrListNotFound
		default:
			return err
		}
	}

	return nil
}

func (s *ListService) getList(ctx context.Context, listID int64) (*model.List, error) {
	list, err := s.store.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return list, nil
}

// requireRole checks that the list exists and actorID is a member of it,
// and an admin when admin is set.
func (s *ListService) requireRole(ctx context.Context, actorID, listID int64, admin bool) error {
	if _, err := s.getList(ctx, listID); err != nil {
		return err
	}

	denied := ErrNotListMember
	if admin {
		denied = ErrNotListAdmin
	}

	member, err := s.store.GetMembership(ctx, listID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return denied
		}
		return err
	}

	if admin && !member.IsAdmin {
		return denied
	}

	return nil
}
