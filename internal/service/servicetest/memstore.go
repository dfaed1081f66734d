// Package servicetest provides in-memory stores for tests of the service
// and handler layers.
package servicetest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/placelist/placelist/internal/cache"
	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/repository"
)

// MemStore implements the service store interfaces in memory, returning the
// same sentinel errors as the Postgres repository.
type MemStore struct {
	mu sync.Mutex

	nextID  int64
	users   map[int64]*model.User
	places  map[int64]*model.Place
	reviews []model.Review
	lists   map[int64]*model.List
	members map[int64][]model.ListMember // by list, join order
	listed  map[int64][]int64            // place IDs by list, insertion order

	// FailCreateList, when set, is returned by CreateList.
	FailCreateList error
	placeReads     int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:   map[int64]*model.User{},
		places:  map[int64]*model.Place{},
		lists:   map[int64]*model.List{},
		members: map[int64][]model.ListMember{},
		listed:  map[int64][]int64{},
	}
}

// PlaceReads reports how many times GetPlaceByID was called.
func (m *MemStore) PlaceReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placeReads
}

func (m *MemStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MemStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MemStore) UpdateUserPasswordHash(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *MemStore) CreatePlace(_ context.Context, place *model.Place) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if place.PlaceID != nil {
		for _, p := range m.places {
			if p.PlaceID != nil && *p.PlaceID == *place.PlaceID {
				return repository.ErrPlaceIDExists
			}
		}
	}
	place.ID = m.id()
	place.CreatedAt = time.Now()
	cp := *place
	m.places[place.ID] = &cp
	return nil
}

func (m *MemStore) GetPlaceByID(_ context.Context, id int64) (*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placeReads++
	p, ok := m.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) ListPlaces(_ context.Context) ([]*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Place{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.places[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemStore) SearchPlacesByName(_ context.Context, name string) ([]model.PlaceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.PlaceSummary{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.places[id]; ok && containsFold(p.Name, name) {
			out = append(out, summarize(p))
		}
	}
	return out, nil
}

func (m *MemStore) UpdatePlace(_ context.Context, id int64, update model.PlaceUpdate) (*model.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}
	applyUpdate(p, update)
	cp := *p
	return &cp, nil
}

func (m *MemStore) GetPlaceRating(_ context.Context, placeID int64) (model.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingLocked(placeID), nil
}

func (m *MemStore) ratingLocked(placeID int64) model.Rating {
	var scores []int
	for _, r := range m.reviews {
		if r.PlaceID == placeID {
			scores = append(scores, r.Score)
		}
	}
	return ratingOf(scores)
}

func (m *MemStore) CreateReview(_ context.Context, review *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.places[review.PlaceID]; !ok {
		return repository.ErrReferenceNotFound
	}
	if _, ok := m.users[review.UserID]; !ok {
		return repository.ErrReferenceNotFound
	}
	review.ID = m.id()
	review.CreatedAt = time.Now()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *MemStore) ListReviewsByPlace(_ context.Context, placeID int64) ([]model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Review{}
	for _, r := range m.reviews {
		if r.PlaceID == placeID {
			r.Username = m.users[r.UserID].Username
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemStore) CreateList(_ context.Context, list *model.List) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreateList != nil {
		return m.FailCreateList
	}
	owner, ok := m.users[list.OwnerID]
	if !ok {
		return repository.ErrReferenceNotFound
	}
	list.ID = m.id()
	list.CreatedAt = time.Now()
	cp := *list
	m.lists[list.ID] = &cp
	m.members[list.ID] = []model.ListMember{{UserID: owner.ID, Username: owner.Username, IsAdmin: true}}
	return nil
}

func (m *MemStore) GetListByID(_ context.Context, id int64) (*model.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return nil, repository.ErrListNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MemStore) ListListsForUser(_ context.Context, userID int64) ([]model.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.List{}
	for id := int64(1); id <= m.nextID; id++ {
		l, ok := m.lists[id]
		if !ok {
			continue
		}
		if l.OwnerID == userID || m.memberIndexLocked(id, userID) >= 0 {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *MemStore) ListPlacesInList(_ context.Context, listID int64) ([]model.PlaceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.PlaceSummary{}
	for _, pid := range m.listed[listID] {
		out = append(out, summarize(m.places[pid]))
	}
	return out, nil
}

func (m *MemStore) ListRatedPlacesInList(_ context.Context, listID int64) ([]model.RatedPlace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.RatedPlace{}
	for _, pid := range m.listed[listID] {
		out = append(out, model.RatedPlace{
			PlaceSummary: summarize(m.places[pid]),
			Rating:       m.ratingLocked(pid),
		})
	}
	return out, nil
}

func (m *MemStore) ListMembers(_ context.Context, listID int64) ([]model.ListMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ListMember{}, m.members[listID]...), nil
}

func (m *MemStore) GetMembership(_ context.Context, listID, userID int64) (model.ListMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.memberIndexLocked(listID, userID)
	if i < 0 {
		return model.ListMember{}, repository.ErrMemberNotFound
	}
	return m.members[listID][i], nil
}

func (m *MemStore) AddPlaceToList(_ context.Context, listID, placeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[listID]; !ok {
		return repository.ErrReferenceNotFound
	}
	if _, ok := m.places[placeID]; !ok {
		return repository.ErrReferenceNotFound
	}
	for _, pid := range m.listed[listID] {
		if pid == placeID {
			return repository.ErrPlaceAlreadyInList
		}
	}
	m.listed[listID] = append(m.listed[listID], placeID)
	return nil
}

func (m *MemStore) AddListMember(_ context.Context, listID, userID int64, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrReferenceNotFound
	}
	if m.memberIndexLocked(listID, userID) >= 0 {
		return repository.ErrAlreadyMember
	}
	m.members[listID] = append(m.members[listID], model.ListMember{UserID: userID, Username: u.Username, IsAdmin: isAdmin})
	return nil
}

func (m *MemStore) RemovePlaceFromList(_ context.Context, listID, placeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.listed[listID]
	for i, pid := range ids {
		if pid == placeID {
			m.listed[listID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrListPlaceNotFound
}

func (m *MemStore) RemoveListMember(_ context.Context, listID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[listID]; !ok {
		return repository.ErrListNotFound
	}
	i := m.memberIndexLocked(listID, userID)
	if i < 0 {
		return repository.ErrMemberNotFound
	}
	ms := m.members[listID]
	if ms[i].IsAdmin {
		admins := 0
		for _, mm := range ms {
			if mm.IsAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return repository.ErrLastAdmin
		}
	}
	m.members[listID] = append(ms[:i:i], ms[i+1:]...)
	return nil
}

func (m *MemStore) memberIndexLocked(listID, userID int64) int {
	for i, mm := range m.members[listID] {
		if mm.UserID == userID {
			return i
		}
	}
	return -1
}

func summarize(p *model.Place) model.PlaceSummary {
	return model.PlaceSummary{ID: p.ID, Name: p.Name, Address: p.Address, Latitude: p.Latitude, Longitude: p.Longitude}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// MemCache is an in-process place cache.
type MemCache struct {
	mu      sync.Mutex
	entries map[int64]model.Place
	// FailGet, when set, is returned by GetPlace.
	FailGet error
}

// NewMemCache returns an empty MemCache.
func NewMemCache() *MemCache {
	return &MemCache{entries: map[int64]model.Place{}}
}

func (c *MemCache) GetPlace(_ context.Context, id int64) (*model.Place, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailGet != nil {
		return nil, c.FailGet
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &p, nil
}

func (c *MemCache) SetPlace(_ context.Context, place *model.Place) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[place.ID] = *place
	return nil
}

func (c *MemCache) DeletePlace(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

// applyUpdate mirrors the dynamic SET clause of repository.UpdatePlace.
func applyUpdate(p *model.Place, u model.PlaceUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Category != nil {
		p.Category = append([]string(nil), (*u.Category)...)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.WorkHours != nil {
		p.WorkHours = *u.WorkHours
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
}

func ratingOf(scores []int) model.Rating {
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	return model.Rating{
		Average: model.AverageRating(sum, int64(len(scores))),
		Total:   int64(len(scores)),
	}
}
