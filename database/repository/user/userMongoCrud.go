package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grambazaar/database/repository"
	"grambazaar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateProfile sets name and phone and returns the updated user.
func (r *MongoUserRepo) UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error) {
	return r.updateSet(ctx, id, bson.M{"name": name, "phone": phone})
}

// UpdateRole sets the user's role and returns the updated user.
func (r *MongoUserRepo) UpdateRole(ctx context.Context, id, role string) (*models.User, error) {
	return r.updateSet(ctx, id, bson.M{"role": role})
}

func (r *MongoUserRepo) updateSet(ctx context.Context, id string, updateDoc bson.M) (*models.User, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(safeProjection)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return &user, nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
