package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placelist/placelist/internal/cache"
	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/repository"
)

const maxShortFieldLength = 255

// PlaceStore is the persistence PlaceService depends on.
type PlaceStore interface {
	CreatePlace(ctx context.Context, place *model.Place) error
	GetPlaceByID(ctx context.Context, id int64) (*model.Place, error)
	ListPlaces(ctx context.Context) ([]*model.Place, error)
	SearchPlacesByName(ctx context.Context, name string) ([]model.PlaceSummary, error)
	UpdatePlace(ctx context.Context, id int64, update model.PlaceUpdate) (*model.Place, error)
	GetPlaceRating(ctx context.Context, placeID int64) (model.Rating, error)
}

// PlaceCache caches place records by ID. *cache.Cache implements it.
type PlaceCache interface {
	GetPlace(ctx context.Context, id int64) (*model.Place, error)
	SetPlace(ctx context.Context, place *model.Place) error
	DeletePlace(ctx context.Context, id int64) error
}

// PlaceService handles place business logic.
type PlaceService struct {
	store   PlaceStore
	cache   PlaceCache
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewPlaceService creates a new PlaceService. placeCache may be nil.
func NewPlaceService(store PlaceStore, placeCache PlaceCache, recorder metrics.Recorder, logger *slog.Logger) *PlaceService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceService{
		store:   store,
		cache:   placeCache,
		metrics: recorder,
		logger:  logger,
	}
}

// CreatePlaceInput defines input for submitting a place. Nil means the
// field was absent from the request.
type CreatePlaceInput struct {
	PlaceID     *string
	Name        *string
	Latitude    *float64
	Longitude   *float64
	Address     *string
	Categories  []string
	Description *string
	WorkHours   *string
	Website     *string
	Phone       *string
}

// PlaceListing is the result of List. Exactly one of All and Matches is set,
// depending on whether a name filter was given.
type PlaceListing struct {
	Filtered bool
	All      []*model.Place
	Matches  []model.PlaceSummary
}

// PlaceWithRating is a place record with its review aggregate.
type PlaceWithRating struct {
	*model.Place
	model.Rating
}

// Create validates and stores a new place. A duplicate external ID is a conflict.
func (s *PlaceService) Create(ctx context.Context, in CreatePlaceInput) (*model.Place, error) {
	if err := validateCreatePlace(in); err != nil {
		return nil, err
	}

	categories := in.Categories
	if categories == nil {
		categories = []string{}
	}

	place := &model.Place{
		PlaceID:     in.PlaceID,
		Name:        *in.Name,
		Latitude:    *in.Latitude,
		Longitude:   *in.Longitude,
		Address:     *in.Address,
		Category:    categories,
		Description: *in.Description,
		WorkHours:   *in.WorkHours,
		Website:     *in.Website,
		Phone:       *in.Phone,
	}

	if err := s.store.CreatePlace(ctx, place); err != nil {
		if errors.Is(err, repository.ErrPlaceIDExists) {
			return nil, ErrPlaceExists
		}
		return nil, err
	}

	s.metrics.IncPlaceCreated()
	return place, nil
}

func validateCreatePlace(in CreatePlaceInput) error {
	required := []struct {
		name  string
		value *string
	}{
		{"display_name", in.Name},
		{"address", in.Address},
		{"description", in.Description},
		{"work_hours", in.WorkHours},
		{"url", in.Website},
		{"phone", in.Phone},
	}
	for _, f := range required {
		if f.value == nil {
			return invalidInput(f.name + " is required")
		}
	}

	if in.Latitude == nil || in.Longitude == nil {
		return invalidInput("lat and lon are required")
	}
	if lat := *in.Latitude; !(lat >= -90 && lat <= 90) {
		return invalidInput("lat must be between -90 and 90")
	}
	if lon := *in.Longitude; !(lon >= -180 && lon <= 180) {
		return invalidInput("lon must be between -180 and 180")
	}

	if len(*in.Name) > maxShortFieldLength {
		return invalidInput(fmt.Sprintf("display_name must be at most %d characters", maxShortFieldLength))
	}
	if in.PlaceID != nil && len(*in.PlaceID) > maxShortFieldLength {
		return invalidInput(fmt.Sprintf("place_id must be at most %d characters", maxShortFieldLength))
	}

	return nil
}

// List returns all places, or the reduced projection of places whose name
// contains name when name is non-empty.
func (s *PlaceService) List(ctx context.Context, name string) (*PlaceListing, error) {
	if name == "" {
		all, err := s.store.ListPlaces(ctx)
		if err != nil {
			return nil, err
		}
		return &PlaceListing{All: all}, nil
	}

	matches, err := s.store.SearchPlacesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &PlaceListing{Filtered: true, Matches: matches}, nil
}

// Get returns a place with its review aggregate. The record is read through
// the cache; the aggregate is always computed fresh.
func (s *PlaceService) Get(ctx context.Context, id int64) (*PlaceWithRating, error) {
	place, err := s.getPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.store.GetPlaceRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PlaceWithRating{Place: place, Rating: rating}, nil
}

func (s *PlaceService) getPlace(ctx context.Context, id int64) (*model.Place, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPlace(ctx, id)
		if err == nil {
			s.metrics.IncPlaceCacheHit()
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("place cache read failed", "place_id", id, "error", err)
		}
		s.metrics.IncPlaceCacheMiss()
	}

	place, err := s.store.GetPlaceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPlace(ctx, place); err != nil {
			s.logger.Warn("place cache write failed", "place_id", id, "error", err)
		}
	}

	return place, nil
}

// Update applies a partial update. Fields absent from update keep their values.
func (s *PlaceService) Update(ctx context.Context, id int64, update model.PlaceUpdate) (*model.Place, error) {
	if update.Name != nil && len(*update.Name) > maxShortFieldLength {
		return nil, invalidInput(fmt.Sprintf("name must be at most %d characters", maxShortFieldLength))
	}

	place, err := s.store.UpdatePlace(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.DeletePlace(ctx, id); err != nil {
			s.logger.Warn("place cache invalidation failed", "place_id", id, "error", err)
		}
	}

	if !update.IsEmpty() {
		s.metrics.IncPlaceUpdated()
	}
	return place, nil
}
