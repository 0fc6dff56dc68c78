package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myflix/internal/common"
	"myflix/internal/domain/model"
	"myflix/internal/domain/repository"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

func matrixRequest() CreateMovieRequest {
	return CreateMovieRequest{
		Title:       "The Matrix",
		Description: "A hacker discovers reality is a simulation.",
		Genre:       model.Genre{Name: "Science Fiction", Description: "Futuristic settings"},
		Director:    model.Director{Name: "Lana Wachowski", Bio: "American director"},
	}
}

func TestMovieService_CreateAndGetByTitle(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), nil, time.Minute)
	ctx := context.Background()

	movie, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, movie.ID)
	assert.Equal(t, "the-matrix", movie.Slug)

	found, err := svc.GetByTitle(ctx, "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, movie.ID, found.ID)

	_, err = svc.GetByTitle(ctx, "No Such Film")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestMovieService_Create_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), nil, time.Minute)

	req := matrixRequest()
	req.Title = ""
	_, err := svc.Create(context.Background(), req)
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestMovieService_Create_DuplicateTitle(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, matrixRequest())
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestMovieService_ListByGenre(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	movies, err := svc.ListByGenre(ctx, "Science Fiction")
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	_, err = svc.ListByGenre(ctx, "Western")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestMovieService_GetDirector(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	director, err := svc.GetDirector(ctx, "Lana Wachowski")
	require.NoError(t, err)
	assert.Equal(t, "American director", director.Bio)

	_, err = svc.GetDirector(ctx, "Nobody")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestMovieService_ListUsesCache(t *testing.T) {
	t.Parallel()

	movieRepo := repository.NewMemoryMovieRepository()
	cache := newFakeCache()
	svc := NewMovieService(movieRepo, cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)

	// The listing is now served from the cache even if the store changes
	// underneath it.
	require.NoError(t, movieRepo.Delete(ctx, movies[0].ID))
	cached, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestMovieService_CreateInvalidatesListCache(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	svc := NewMovieService(repository.NewMemoryMovieRepository(), cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)

	req := matrixRequest()
	req.Title = "The Matrix Reloaded"
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	movies, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestMovieService_Delete(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(repository.NewMemoryMovieRepository(), newFakeCache(), time.Minute)
	ctx := context.Background()

	movie, err := svc.Create(ctx, matrixRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, movie.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, movie.ID), common.ErrNotFound))

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}
