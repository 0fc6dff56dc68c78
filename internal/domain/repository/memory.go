package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"myflix/internal/common"
	"myflix/internal/domain/model"
)

// In-memory repositories backing tests and local development. They
// honor the same atomicity contract as the mongo implementations:
// favorites mutations are serialized per store, never read-modify-write
// on the caller's side.

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by username
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*model.User)}
}

func (r *memoryUserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user with this username already exists: %w", common.ErrConflict)
	}
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyUser(stored), nil
}

func (r *memoryUserRepository) Update(ctx context.Context, username string, update model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Email = update.Email
	if update.PasswordHash != nil {
		stored.PasswordHash = *update.PasswordHash
	}
	if update.Birthday != nil {
		stored.Birthday = update.Birthday
	}
	if update.Death != nil {
		stored.Death = update.Death
	}
	stored.UpdatedAt = time.Now().UTC()
	return copyUser(stored), nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memoryUserRepository) PushFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	stored.Favorites = append(stored.Favorites, movieID)
	stored.UpdatedAt = time.Now().UTC()
	return copyUser(stored), nil
}

func (r *memoryUserRepository) PullFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
	}

	remaining := stored.Favorites[:0]
	removed := false
	for _, id := range stored.Favorites {
		if id == movieID {
			removed = true
			continue
		}
		remaining = append(remaining, id)
	}
	if !removed {
		return nil, fmt.Errorf("movie not found in favorites: %w", common.ErrNotFound)
	}
	stored.Favorites = remaining
	stored.UpdatedAt = time.Now().UTC()
	return copyUser(stored), nil
}

func copyUser(u *model.User) *model.User {
	dup := *u
	dup.Favorites = append([]string{}, u.Favorites...)
	return &dup
}

type memoryMovieRepository struct {
	mu     sync.Mutex
	movies map[string]*model.Movie // keyed by id
}

func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{movies: make(map[string]*model.Movie)}
}

func (r *memoryMovieRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.movies {
		if m.Slug == movie.Slug {
			return fmt.Errorf("movie with this title already exists: %w", common.ErrConflict)
		}
	}
	movie.ID = uuid.NewString()
	now := time.Now().UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	stored := *movie
	r.movies[movie.ID] = &stored
	return nil
}

func (r *memoryMovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies := []model.Movie{}
	for _, m := range r.movies {
		movies = append(movies, *m)
	}
	return movies, nil
}

func (r *memoryMovieRepository) FindBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.movies {
		if m.Slug == slug {
			dup := *m
			return &dup, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryMovieRepository) FindByGenre(ctx context.Context, genreName string) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies := []model.Movie{}
	for _, m := range r.movies {
		if m.Genre.Name == genreName {
			movies = append(movies, *m)
		}
	}
	return movies, nil
}

func (r *memoryMovieRepository) FindByDirector(ctx context.Context, directorName string) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.movies {
		if m.Director.Name == directorName {
			dup := *m
			return &dup, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryMovieRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.movies, id)
	return nil
}
