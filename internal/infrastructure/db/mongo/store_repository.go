package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

const storesCollection = "stores"

type StoreRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(storesCollection), seq: newSequence(db)}
}

type storeDoc struct {
	ID        int       `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Address   string    `bson:"address"`
	OwnerID   int       `bson:"owner_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d storeDoc) toDomain() *domain.Store {
	return &domain.Store{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Address:   d.Address,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, storesCollection)
	if err != nil {
		return nil, err
	}

	doc := storeDoc{
		ID:        id,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id int) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc storeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByOwner returns the first store for the owner, lowest id first.
func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID int) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var doc storeDoc
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store by owner: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StoreRepository) List(ctx context.Context) ([]domain.Store, error) {
	return r.find(ctx, bson.M{})
}

func (r *StoreRepository) SearchByName(ctx context.Context, name string) ([]domain.Store, error) {
	return r.find(ctx, bson.M{"name": substringPattern(name)})
}

func (r *StoreRepository) SearchByAddress(ctx context.Context, address string) ([]domain.Store, error) {
	return r.find(ctx, bson.M{"address": substringPattern(address)})
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique email index and the owner lookup index.
func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(caseInsensitive()),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}

func (r *StoreRepository) find(ctx context.Context, filter bson.M) ([]domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer cur.Close(ctx)

	var stores []domain.Store
	for cur.Next(ctx) {
		var doc storeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode store: %w", err)
		}
		stores = append(stores, *doc.toDomain())
	}
	return stores, cur.Err()
}

// substringPattern builds a case-insensitive substring regex with the search
// term escaped, so user input cannot inject regex syntax.
func substringPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
