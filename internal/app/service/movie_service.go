package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"myflix/internal/common"
	"myflix/internal/domain/model"
	"myflix/internal/domain/repository"
)

const cacheKeyAllMovies = "movies:all"

func cacheKeyMovie(movieSlug string) string {
	return "movies:slug:" + movieSlug
}

// MovieCache is the read-cache contract; the redis client implements
// it. A nil cache disables caching entirely.
type MovieCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

type MovieService struct {
	movieRepo repository.MovieRepository
	cache     MovieCache
	cacheTTL  time.Duration
}

func NewMovieService(movieRepo repository.MovieRepository, cache MovieCache, cacheTTL time.Duration) *MovieService {
	return &MovieService{movieRepo: movieRepo, cache: cache, cacheTTL: cacheTTL}
}

type CreateMovieRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Genre       model.Genre    `json:"genre"`
	Director    model.Director `json:"director"`
	ImagePath   string         `json:"image_path,omitempty"`
	Featured    bool           `json:"featured"`
}

func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, cacheKeyAllMovies); ok {
			var movies []model.Movie
			if err := json.Unmarshal(data, &movies); err == nil {
				return movies, nil
			}
			log.Warn().Msg("discarding undecodable movie list cache entry")
		}
	}

	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, cacheKeyAllMovies, movies)
	return movies, nil
}

func (s *MovieService) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	movieSlug := slug.Make(title)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, cacheKeyMovie(movieSlug)); ok {
			movie := &model.Movie{}
			if err := json.Unmarshal(data, movie); err == nil {
				return movie, nil
			}
		}
	}

	movie, err := s.movieRepo.FindBySlug(ctx, movieSlug)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, cacheKeyMovie(movieSlug), movie)
	return movie, nil
}

func (s *MovieService) ListByGenre(ctx context.Context, genreName string) ([]model.Movie, error) {
	movies, err := s.movieRepo.FindByGenre(ctx, genreName)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("no movies found for this genre: %w", common.ErrNotFound)
	}
	return movies, nil
}

// GetDirector returns the director view from any movie the director
// appears on, mirroring the catalog's denormalized layout.
func (s *MovieService) GetDirector(ctx context.Context, directorName string) (*model.Director, error) {
	movie, err := s.movieRepo.FindByDirector(ctx, directorName)
	if err != nil {
		return nil, err
	}
	return &movie.Director, nil
}

func (s *MovieService) Create(ctx context.Context, req CreateMovieRequest) (*model.Movie, error) {
	if req.Title == "" || req.Description == "" || req.Genre.Name == "" || req.Director.Name == "" {
		return nil, common.Errorf("missing required fields for movie creation: %w", common.ErrBadRequest)
	}

	movie := &model.Movie{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Genre:       req.Genre,
		Director:    req.Director,
		ImagePath:   req.ImagePath,
		Featured:    req.Featured,
	}
	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Del(ctx, cacheKeyAllMovies, cacheKeyMovie(movie.Slug))
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return err
	}
	// Per-slug entries age out via TTL; only the list key is known here.
	if s.cache != nil {
		s.cache.Del(ctx, cacheKeyAllMovies)
	}
	return nil
}

func (s *MovieService) cachePut(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to marshal cache entry")
		return
	}
	s.cache.Set(ctx, key, data, s.cacheTTL)
}
