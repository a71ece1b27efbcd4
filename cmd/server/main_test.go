package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/catalog"
	"github.com/iliyamo/car-rental-reservation/internal/config"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/storage"
)

type brokenSource struct{}

func (brokenSource) Load(context.Context) ([]model.Car, error) {
	return nil, catalog.ErrCatalogUnavailable
}

func TestCheckCatalog_Summary(t *testing.T) {
	src := catalog.Static{
		{VIN: "A", Brand: "Toyota", Type: "Sedan", Available: true},
		{VIN: "B", Brand: "Ford", Type: "SUV", Available: false},
		{VIN: "C", Brand: "Toyota", Type: "SUV", Available: true},
	}
	var out bytes.Buffer
	require.NoError(t, checkCatalog(context.Background(), &out, src))
	assert.Equal(t, "cars: 3 (available: 2)\ntypes: Sedan, SUV\nbrands: Toyota, Ford\n", out.String())
}

func TestCheckCatalog_Failure(t *testing.T) {
	var out bytes.Buffer
	err := checkCatalog(context.Background(), &out, brokenSource{})
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
	assert.Empty(t, out.String())
}

func TestOpenStorage_Drivers(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := openStorage(ctx, config.Config{StorageDriver: config.DriverMemory}, nil)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &storage.Memory{}, store)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	store, closeFn, err = openStorage(ctx, config.Config{StorageDriver: config.DriverRedis, StoragePrefix: "t"}, rdb)
	require.NoError(t, err)
	defer closeFn()
	require.NoError(t, store.Set(ctx, "k", "v"))
	assert.True(t, mr.Exists("t:k"))
}
