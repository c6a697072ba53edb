package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

const bookingsCollection = "bookings"

// BookingRepository is the Mongo-backed booking store. Append-only.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user"`
	PlaceID   string             `bson:"place"`
	CheckIn   time.Time          `bson:"check_in"`
	CheckOut  time.Time          `bson:"check_out"`
	Guests    int                `bson:"guests"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone"`
	Price     int                `bson:"price"`
	CreatedAt int64              `bson:"created_at"`
}

func (mb *mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        mb.ID.Hex(),
		UserID:    mb.UserID,
		PlaceID:   mb.PlaceID,
		CheckIn:   mb.CheckIn,
		CheckOut:  mb.CheckOut,
		Guests:    mb.Guests,
		Name:      mb.Name,
		Phone:     mb.Phone,
		Price:     mb.Price,
		CreatedAt: unixToTime(mb.CreatedAt),
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	doc := mongoBooking{
		UserID:    b.UserID,
		PlaceID:   b.PlaceID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Guests:    b.Guests,
		Name:      b.Name,
		Phone:     b.Phone,
		Price:     b.Price,
		CreatedAt: b.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []*domain.Booking
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, mb.toDomain())
	}
	return bookings, cur.Err()
}

// EnsureIndexes creates the user index used by ListByUser.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}
