package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

const ratingsCollection = "ratings"

type RatingRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(ratingsCollection), seq: newSequence(db)}
}

type ratingDoc struct {
	ID        int       `bson:"_id"`
	UserID    int       `bson:"user_id"`
	StoreID   int       `bson:"store_id"`
	Value     int       `bson:"rating"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d ratingDoc) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        d.ID,
		UserID:    d.UserID,
		StoreID:   d.StoreID,
		Value:     d.Value,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, ratingsCollection)
	if err != nil {
		return nil, err
	}

	doc := ratingDoc{
		ID:        id,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRatingExists
		}
		return nil, fmt.Errorf("insert rating: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *RatingRepository) Find(ctx context.Context, userID, storeID int) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ratingDoc
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "store_id": storeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateValue overwrites the star value in place; _id and created_at are
// untouched.
func (r *RatingRepository) UpdateValue(ctx context.Context, userID, storeID, value int) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc ratingDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "store_id": storeID},
		bson.M{"$set": bson.M{"rating": value}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID int) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"store_id": storeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer cur.Close(ctx)

	var ratings []domain.Rating
	for cur.Next(ctx) {
		var doc ratingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, *doc.toDomain())
	}
	return ratings, cur.Err()
}

// AggregateByStore computes mean and count with a $match/$group pipeline so
// the figures are always consistent with the current rating set.
func (r *RatingRepository) AggregateByStore(ctx context.Context, storeID int) (domain.StoreAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": storeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.StoreAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return domain.StoreAggregate{}, fmt.Errorf("decode aggregate: %w", err)
		}
	}
	// no document means no ratings: zero value already correct
	return domain.StoreAggregate{Average: result.Average, Count: result.Count}, cur.Err()
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the compound uniqueness key on (user_id, store_id)
// plus the store lookup index.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "store_id", Value: 1}}},
	})
	return err
}
