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

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

const placesCollection = "places"

// PlaceRepository is the Mongo-backed listing store.
type PlaceRepository struct {
	coll *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{coll: db.Collection(placesCollection)}
}

type mongoPlace struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner"`
	Title       string             `bson:"title"`
	Address     string             `bson:"address"`
	Photos      []string           `bson:"photos"`
	Description string             `bson:"description"`
	Perks       []string           `bson:"perks"`
	ExtraInfo   string             `bson:"extra_info"`
	CheckIn     int                `bson:"check_in"`
	CheckOut    int                `bson:"check_out"`
	MaxGuests   int                `bson:"max_guests"`
	Price       int                `bson:"price"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func toMongoPlace(p *domain.Place) mongoPlace {
	return mongoPlace{
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Address:     p.Address,
		Photos:      p.Photos,
		Description: p.Description,
		Perks:       p.Perks,
		ExtraInfo:   p.ExtraInfo,
		CheckIn:     p.CheckIn,
		CheckOut:    p.CheckOut,
		MaxGuests:   p.MaxGuests,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
}

func (mp *mongoPlace) toDomain() *domain.Place {
	return &domain.Place{
		ID:          mp.ID.Hex(),
		OwnerID:     mp.OwnerID,
		Title:       mp.Title,
		Address:     mp.Address,
		Photos:      mp.Photos,
		Description: mp.Description,
		Perks:       mp.Perks,
		ExtraInfo:   mp.ExtraInfo,
		CheckIn:     mp.CheckIn,
		CheckOut:    mp.CheckOut,
		MaxGuests:   mp.MaxGuests,
		Price:       mp.Price,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}

func (r *PlaceRepository) Create(ctx context.Context, p *domain.Place) (*domain.Place, error) {
	res, err := r.coll.InsertOne(ctx, toMongoPlace(p))
	if err != nil {
		return nil, fmt.Errorf("insert place: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id string) (*domain.Place, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlaceNotFound
	}

	var mp mongoPlace
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("find place: %w", err)
	}
	return mp.toDomain(), nil
}

// Update rewrites the mutable fields. The owner field is deliberately absent
// from the update document; ownership never transfers.
func (r *PlaceRepository) Update(ctx context.Context, p *domain.Place) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPlaceNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"address":     p.Address,
		"photos":      p.Photos,
		"description": p.Description,
		"perks":       p.Perks,
		"extra_info":  p.ExtraInfo,
		"check_in":    p.CheckIn,
		"check_out":   p.CheckOut,
		"max_guests":  p.MaxGuests,
		"price":       p.Price,
		"updated_at":  p.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepository) List(ctx context.Context) ([]*domain.Place, error) {
	return r.find(ctx, bson.M{})
}

func (r *PlaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Place, error) {
	return r.find(ctx, bson.M{"owner": ownerID})
}

func (r *PlaceRepository) Search(ctx context.Context, key string) ([]*domain.Place, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(key), Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"address": pattern},
	}})
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlaceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *PlaceRepository) find(ctx context.Context, filter bson.M) ([]*domain.Place, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}
	defer cur.Close(ctx)

	var places []*domain.Place
	for cur.Next(ctx) {
		var mp mongoPlace
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode place: %w", err)
		}
		places = append(places, mp.toDomain())
	}
	return places, cur.Err()
}

// EnsureIndexes creates the owner index used by ListByOwner.
func (r *PlaceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}
