package service

import (
	"errors"

	"github.com/placelist/placelist/internal/cache"
	"github.com/placelist/placelist/internal/repository"
	"github.com/placelist/placelist/internal/service/servicetest"
)

var errBoom = errors.New("boom")

func newMemStore() *servicetest.MemStore { return servicetest.NewMemStore() }
func newMemCache() *servicetest.MemCache { return servicetest.NewMemCache() }

var (
	_ UserStore   = (*servicetest.MemStore)(nil)
	_ PlaceStore  = (*servicetest.MemStore)(nil)
	_ ReviewStore = (*servicetest.MemStore)(nil)
	_ ListStore   = (*servicetest.MemStore)(nil)
	_ PlaceCache  = (*servicetest.MemCache)(nil)

	_ UserStore   = (*repository.Repository)(nil)
	_ PlaceStore  = (*repository.Repository)(nil)
	_ ReviewStore = (*repository.Repository)(nil)
	_ ListStore   = (*repository.Repository)(nil)
	_ PlaceCache  = (*cache.Cache)(nil)
)
