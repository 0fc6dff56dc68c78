package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"myflix/internal/common"
	"myflix/internal/domain/model"
)

type MovieRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, movie *model.Movie) error
	List(ctx context.Context) ([]model.Movie, error)
	FindBySlug(ctx context.Context, slug string) (*model.Movie, error)
	FindByGenre(ctx context.Context, genreName string) ([]model.Movie, error)
	FindByDirector(ctx context.Context, directorName string) (*model.Movie, error)
	Delete(ctx context.Context, id string) error
}

type mongoMovieRepository struct {
	collection *mongo.Collection
}

func NewMongoMovieRepository(db *mongo.Database) MovieRepository {
	return &mongoMovieRepository{collection: db.Collection("movies")}
}

func (r *mongoMovieRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongoMovieRepository.EnsureIndexes: %w", err)
	}
	return nil
}

func (r *mongoMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	movie.ID = uuid.NewString()
	now := time.Now().UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, movie); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("movie with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoMovieRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoMovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.List: %w", err)
	}
	defer cursor.Close(ctx)

	movies := []model.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.List: %w", err)
	}
	return movies, nil
}

func (r *mongoMovieRepository) FindBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	movie := &model.Movie{}
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoMovieRepository.FindBySlug: %w", err)
	}
	return movie, nil
}

func (r *mongoMovieRepository) FindByGenre(ctx context.Context, genreName string) ([]model.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"genre.name": genreName})
	if err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindByGenre: %w", err)
	}
	defer cursor.Close(ctx)

	movies := []model.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindByGenre: %w", err)
	}
	return movies, nil
}

func (r *mongoMovieRepository) FindByDirector(ctx context.Context, directorName string) (*model.Movie, error) {
	movie := &model.Movie{}
	err := r.collection.FindOne(ctx, bson.M{"director.name": directorName}).Decode(movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoMovieRepository.FindByDirector: %w", err)
	}
	return movie, nil
}

func (r *mongoMovieRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoMovieRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
