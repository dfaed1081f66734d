package service

import (
	"context"
	"errors"
	"testing"

	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/service/servicetest"
)

type listFixture struct {
	store *servicetest.MemStore
	svc   *ListService
	owner *model.User
	other *model.User
	list  *model.List
	place *model.Place
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	f := &listFixture{store: store, svc: NewListService(store, nil)}

	f.owner = &model.User{Username: "owner"}
	f.other = &model.User{Username: "other"}
	for _, u := range []*model.User{f.owner, f.other} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	place, err := NewPlaceService(store, nil, nil, nil).Create(ctx, validPlaceInput("listed"))
	if err != nil {
		t.Fatalf("Create place failed: %v", err)
	}
	f.place = place

	list, err := f.svc.Create(ctx, f.owner.ID, "Weekend")
	if err != nil {
		t.Fatalf("Create list failed: %v", err)
	}
	f.list = list
	return f
}

func TestListService_CreatorIsAdmin(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)

	details, err := f.svc.GetDetails(context.Background(), f.list.ID)
	if err != nil {
		t.Fatalf("GetDetails failed: %v", err)
	}
	if details.Name != "Weekend" || details.OwnerID != f.owner.ID {
		t.Errorf("unexpected list: %+v", details.List)
	}
	if len(details.Users) != 1 || details.Users[0].UserID != f.owner.ID || !details.Users[0].IsAdmin {
		t.Errorf("creator should be the only admin member, got %+v", details.Users)
	}
	if len(details.Places) != 0 {
		t.Errorf("new list should have no places, got %+v", details.Places)
	}
}

func TestListService_CreateValidation(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.owner.ID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Create(ctx, 999, "Ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown owner: expected ErrUserNotFound, got %v", err)
	}

	f.store.FailCreateList = errBoom
	if _, err := f.svc.Create(ctx, f.owner.ID, "Broken"); !errors.Is(err, errBoom) {
		t.Errorf("store failure should propagate, got %v", err)
	}
}

func TestListService_ListForUser(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)
	ctx := context.Background()

	lists, err := f.svc.ListForUser(ctx, f.owner.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(lists) != 1 || lists[0].ID != f.list.ID {
		t.Errorf("owner lists = %+v", lists)
	}

	lists, err = f.svc.ListForUser(ctx, f.other.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("non-member should see no lists, got %+v", lists)
	}

	if _, err := f.svc.AddMember(ctx, f.owner.ID, f.list.ID, f.other.Username); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	lists, err = f.svc.ListForUser(ctx, f.other.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(lists) != 1 {
		t.Errorf("member should see the shared list, got %+v", lists)
	}
}

func TestListService_AddPlace(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)
	ctx := context.Background()

	if err := f.svc.AddPlace(ctx, f.list.ID, f.place.ID); err != nil {
		t.Fatalf("AddPlace failed: %v", err)
	}
	if err := f.svc.AddPlace(ctx, f.list.ID, f.place.ID); !errors.Is(err, ErrPlaceAlreadyInList) {
		t.Errorf("duplicate: expected ErrPlaceAlreadyInList, got %v", err)
	}
	if err := f.svc.AddPlace(ctx, f.list.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing place: expected ErrInvalidInput, got %v", err)
	}
	if err := f.svc.AddPlace(ctx, f.list.ID, 999); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown place: expected ErrInvalidInput, got %v", err)
	}

	places, err := f.svc.ListPlaces(ctx, f.list.ID)
	if err != nil {
		t.Fatalf("ListPlaces failed: %v", err)
	}
	if len(places) != 1 || places[0].ID != f.place.ID || places[0].Total != 0 {
		t.Errorf("unexpected list places: %+v", places)
	}
}

func TestListService_InputErrorMessage(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)

	err := f.svc.AddPlace(context.Background(), f.list.ID, 0)
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %T", err)
	}
	if inputErr.Message != "Place ID is required" {
		t.Errorf("Message = %q", inputErr.Message)
	}
}

func TestListService_MemberPermissions(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddMember(ctx, f.other.ID, f.list.ID, f.other.Username); !errors.Is(err, ErrNotListAdmin) {
		t.Errorf("non-admin AddMember: expected ErrNotListAdmin, got %v", err)
	}

	member, err := f.svc.AddMember(ctx, f.owner.ID, f.list.ID, f.other.Username)
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if member.UserID != f.other.ID || member.IsAdmin {
		t.Errorf("unexpected member: %+v", member)
	}

	if _, err := f.svc.AddMember(ctx, f.owner.ID, f.list.ID, f.other.Username); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("duplicate member: expected ErrAlreadyMember, got %v", err)
	}
	if _, err := f.svc.AddMember(ctx, f.owner.ID, f.list.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.svc.AddMember(ctx, f.owner.ID, 999, f.other.Username); !errors.Is(err, ErrListNotFound) {
		t.Errorf("unknown list: expected ErrListNotFound, got %v", err)
	}

	if err := f.svc.RemoveMember(ctx, f.other.ID, f.list.ID, f.owner.ID); !errors.Is(err, ErrNotListAdmin) {
		t.Errorf("member removing admin: expected ErrNotListAdmin, got %v", err)
	}
	if err := f.svc.RemoveMember(ctx, f.owner.ID, f.list.ID, f.owner.ID); !errors.Is(err, ErrLastAdmin) {
		t.Errorf("removing last admin: expected ErrLastAdmin, got %v", err)
	}
	if err := f.svc.RemoveMember(ctx, f.owner.ID, f.list.ID, f.other.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := f.svc.RemoveMember(ctx, f.owner.ID, f.list.ID, f.other.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("removing non-member: expected ErrMemberNotFound, got %v", err)
	}

	users, err := f.svc.ListUsers(ctx, f.list.ID)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected only the owner left, got %+v", users)
	}
}

func TestListService_RemovePlace(t *testing.T) {
	t.Parallel()
	f := newListFixture(t)
	ctx := context.Background()

	if err := f.svc.AddPlace(ctx, f.list.ID, f.place.ID); err != nil {
		t.Fatalf("AddPlace failed: %v", err)
	}

	if err := f.svc.RemovePlace(ctx, f.other.ID, f.list.ID, f.place.ID); !errors.Is(err, ErrNotListMember) {
		t.Errorf("outsider: expected ErrNotListMember, got %v", err)
	}

	if _, err := f.svc.AddMember(ctx, f.owner.ID, f.list.ID, f.other.Username); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := f.svc.RemovePlace(ctx, f.other.ID, f.list.ID, f.place.ID); err != nil {
		t.Fatalf("member RemovePlace failed: %v", err)
	}
	if err := f.svc.RemovePlace(ctx, f.other.ID, f.list.ID, f.place.ID); !errors.Is(err, ErrListPlaceNotFound) {
		t.Errorf("second removal: expected ErrListPlaceNotFound, got %v", err)
	}
}

func TestListService_GetDetailsUnknownList(t *testing.T) {
	t.Parallel()
	svc := NewListService(newMemStore(), nil)
	if _, err := svc.GetDetails(context.Background(), 1); !errors.Is(err, ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}
