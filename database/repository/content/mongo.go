package contentRepo

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

func ensureIDIndex(coll *mongo.Collection) {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ScanTimeout)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		zap.L().Warn("failed to create id index", zap.String("collection", coll.Name()), zap.Error(err))
	}
}

func findOne(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to fetch %s %s: %w", coll.Name(), id, err)
	}
	return nil
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out interface{}) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.ScanTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}

func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	result, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s: %w", coll.Name(), err)
	}
	return nil
}

// MongoServiceRepo implements ServiceRepository.
type MongoServiceRepo struct{ coll *mongo.Collection }

func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	r := &MongoServiceRepo{coll: db.Collection("services")}
	ensureIDIndex(r.coll)
	return r
}

func (r *MongoServiceRepo) Create(ctx context.Context, s *models.Service) error {
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	return insertOne(ctx, r.coll, s)
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := findOne(ctx, r.coll, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	out := []models.Service{}
	err := findAll(ctx, r.coll, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}), &out)
	return out, err
}

func (r *MongoServiceRepo) Update(ctx context.Context, s *models.Service) error {
	s.UpdatedAt = time.Now()
	return replaceOne(ctx, r.coll, s.ID, s)
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

// MongoNewsRepo implements NewsRepository.
type MongoNewsRepo struct{ coll *mongo.Collection }

func NewMongoNewsRepo(db *mongo.Database) NewsRepository {
	r := &MongoNewsRepo{coll: db.Collection("news")}
	ensureIDIndex(r.coll)
	return r
}

func (r *MongoNewsRepo) Create(ctx context.Context, n *models.News) error {
	now := time.Now()
	n.CreatedAt, n.UpdatedAt = now, now
	return insertOne(ctx, r.coll, n)
}

func (r *MongoNewsRepo) GetByID(ctx context.Context, id string) (*models.News, error) {
	var n models.News
	if err := findOne(ctx, r.coll, id, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *MongoNewsRepo) List(ctx context.Context) ([]models.News, error) {
	out := []models.News{}
	err := findAll(ctx, r.coll, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}), &out)
	return out, err
}

func (r *MongoNewsRepo) Recent(ctx context.Context, n int64) ([]models.News, error) {
	out := []models.News{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(n)
	err := findAll(ctx, r.coll, opts, &out)
	return out, err
}

func (r *MongoNewsRepo) Update(ctx context.Context, n *models.News) error {
	n.UpdatedAt = time.Now()
	return replaceOne(ctx, r.coll, n.ID, n)
}

func (r *MongoNewsRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *MongoNewsRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ScanTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// MongoMessageRepo implements MessageRepository.
type MongoMessageRepo struct{ coll *mongo.Collection }

func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	r := &MongoMessageRepo{coll: db.Collection("messages")}
	ensureIDIndex(r.coll)
	return r
}

func (r *MongoMessageRepo) Create(ctx context.Context, m *models.Message) error {
	m.CreatedAt = time.Now()
	return insertOne(ctx, r.coll, m)
}

func (r *MongoMessageRepo) List(ctx context.Context) ([]models.Message, error) {
	out := []models.Message{}
	err := findAll(ctx, r.coll, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}), &out)
	return out, err
}

func (r *MongoMessageRepo) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *MongoMessageRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ScanTimeout)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}
	return result.DeletedCount, nil
}

// MongoSettingRepo implements SettingRepository with a fixed document key.
type MongoSettingRepo struct{ coll *mongo.Collection }

const settingKey = "site"

func NewMongoSettingRepo(db *mongo.Database) SettingRepository {
	return &MongoSettingRepo{coll: db.Collection("settings")}
}

func (r *MongoSettingRepo) Get(ctx context.Context) (*models.Setting, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	var s models.Setting
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingKey}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return &s, nil
}

func (r *MongoSettingRepo) Upsert(ctx context.Context, s *models.Setting) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleTimeout)
	defer cancel()

	s.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{"name": s.Name, "logo": s.Logo, "updatedAt": s.UpdatedAt}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": settingKey}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
