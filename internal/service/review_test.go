package service

import (
	"context"
	"errors"
	"testing"

	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/service/servicetest"
)

func seedPlaceAndUser(t *testing.T, store *servicetest.MemStore) (*model.Place, *model.User) {
	t.Helper()
	ctx := context.Background()
	place, err := NewPlaceService(store, nil, nil, nil).Create(ctx, validPlaceInput(t.Name()))
	if err != nil {
		t.Fatalf("Create place failed: %v", err)
	}
	user := &model.User{Username: "reviewer-" + t.Name()}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return place, user
}

func TestReviewService_AddRequiresAllFields(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	svc := NewReviewService(store, nil)
	place, user := seedPlaceAndUser(t, store)

	full := func() AddReviewInput {
		return AddReviewInput{PlaceID: i64Ptr(place.ID), UserID: i64Ptr(user.ID), Text: strPtr("ok"), Score: intPtr(3)}
	}

	tests := []struct {
		name   string
		mutate func(*AddReviewInput)
	}{
		{"missing place", func(in *AddReviewInput) { in.PlaceID = nil }},
		{"missing user", func(in *AddReviewInput) { in.UserID = nil }},
		{"missing text", func(in *AddReviewInput) { in.Text = nil }},
		{"empty text", func(in *AddReviewInput) { in.Text = strPtr("") }},
		{"missing score", func(in *AddReviewInput) { in.Score = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := full()
			tt.mutate(&in)
			if _, err := svc.Add(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestReviewService_ZeroScoreAccepted(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	svc := NewReviewService(store, nil)
	place, user := seedPlaceAndUser(t, store)

	in := AddReviewInput{PlaceID: i64Ptr(place.ID), UserID: i64Ptr(user.ID), Text: strPtr("meh"), Score: intPtr(0)}
	if _, err := svc.Add(context.Background(), in); err != nil {
		t.Fatalf("zero score should be accepted, got %v", err)
	}

	rating, _ := store.GetPlaceRating(context.Background(), place.ID)
	if rating.Total != 1 || rating.Average != 0 {
		t.Errorf("rating = %+v, want 0/1", rating)
	}
}

func TestReviewService_UnknownReferences(t *testing.T) {
	t.Parallel()
	svc := NewReviewService(newMemStore(), nil)

	in := AddReviewInput{PlaceID: i64Ptr(404), UserID: i64Ptr(404), Text: strPtr("ghost"), Score: intPtr(1)}
	if _, err := svc.Add(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReviewService_ListByPlaceHasUsernames(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	svc := NewReviewService(store, nil)
	place, user := seedPlaceAndUser(t, store)
	ctx := context.Background()

	in := AddReviewInput{PlaceID: i64Ptr(place.ID), UserID: i64Ptr(user.ID), Text: strPtr("great"), Score: intPtr(5)}
	if _, err := svc.Add(ctx, in); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reviews, err := svc.ListByPlace(ctx, place.ID)
	if err != nil {
		t.Fatalf("ListByPlace failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Username != user.Username {
		t.Errorf("unexpected reviews: %+v", reviews)
	}

	empty, err := svc.ListByPlace(ctx, 999)
	if err != nil || len(empty) != 0 {
		t.Errorf("unknown place should have no reviews, got %v, %v", empty, err)
	}
}
