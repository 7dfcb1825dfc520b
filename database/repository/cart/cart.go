package cartRepo

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
	"go.uber.org/zap"
)

// CartRepository stores one cart document per user.
type CartRepository interface {
	// GetByUserID returns repository.ErrNotFound when the user has no cart.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	// Save upserts the cart keyed by its user id.
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// MongoCartRepo implements CartRepository using MongoDB.
type MongoCartRepo struct {
	coll *mongo.Collection
}

func NewMongoCartRepo(db *mongo.Database) CartRepository {
	repo := &MongoCartRepo{coll: db.Collection("carts")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("carts: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCartRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ScanTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *MongoCartRepo) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart for user %s: %w", userID, err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (r *MongoCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts); err != nil {
		return fmt.Errorf("failed to save cart for user %s: %w", cart.UserID, err)
	}
	return nil
}

func (r *MongoCartRepo) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete cart for user %s: %w", userID, err)
	}
	return nil
}
