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

type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, username string, update model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, username string) error

	// PushFavorite and PullFavorite are single atomic document updates
	// conditioned on the username, so concurrent requests on the same
	// account cannot lose writes.
	PushFavorite(ctx context.Context, username, movieID string) (*model.User, error)
	PullFavorite(ctx context.Context, username, movieID string) (*model.User, error)
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection("users")}
}

func (r *mongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongoUserRepository.EnsureIndexes: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favorites == nil {
		user.Favorites = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with this username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, username string, update model.UserUpdate) (*model.User, error) {
	set := bson.M{
		"email":      update.Email,
		"updated_at": time.Now().UTC(),
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}
	if update.Birthday != nil {
		set["birthday"] = *update.Birthday
	}
	if update.Death != nil {
		set["death"] = *update.Death
	}

	user := &model.User{}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"username": username},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.Update: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("mongoUserRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) PushFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	user := &model.User{}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"username": username},
		bson.M{
			"$push": bson.M{"favorites": movieID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("mongoUserRepository.PushFavorite: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) PullFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	// The filter requires membership, so the pull is atomic with
	// respect to concurrent mutations of the same favorites array.
	// $pull removes every occurrence of the movie ID.
	user := &model.User{}
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"username": username, "favorites": movieID},
		bson.M{
			"$pull": bson.M{"favorites": movieID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongoUserRepository.PullFavorite: %w", err)
	}

	// No match: distinguish a missing user from a missing favorite.
	if _, findErr := r.FindByUsername(ctx, username); findErr != nil {
		if errors.Is(findErr, common.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
		}
		return nil, findErr
	}
	return nil, fmt.Errorf("movie not found in favorites: %w", common.ErrNotFound)
}
