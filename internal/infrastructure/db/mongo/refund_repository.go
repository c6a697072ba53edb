package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

const refundsCollection = "refunds"

// RefundRepository is the Mongo-backed refund store.
type RefundRepository struct {
	coll *mongo.Collection
}

func NewRefundRepository(db *mongo.Database) *RefundRepository {
	return &RefundRepository{coll: db.Collection(refundsCollection)}
}

type mongoRefund struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user,omitempty"`
	CreatedBy  string             `bson:"created_by,omitempty"`
	Email      string             `bson:"email"`
	BookingRef string             `bson:"booking_ref,omitempty"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	AdminNote  string             `bson:"admin_note,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func (mr *mongoRefund) toDomain() *domain.Refund {
	return &domain.Refund{
		ID: mr.ID.Hex(),
		SubmissionLink: domain.SubmissionLink{
			UserID:    mr.UserID,
			CreatedBy: mr.CreatedBy,
			Email:     mr.Email,
		},
		BookingRef: mr.BookingRef,
		Reason:     mr.Reason,
		Status:     mr.Status,
		AdminNote:  mr.AdminNote,
		CreatedAt:  unixToTime(mr.CreatedAt),
		UpdatedAt:  unixToTime(mr.UpdatedAt),
	}
}

func (r *RefundRepository) Create(ctx context.Context, ref *domain.Refund) (*domain.Refund, error) {
	doc := mongoRefund{
		UserID:     ref.UserID,
		CreatedBy:  ref.CreatedBy,
		Email:      strings.ToLower(ref.Email),
		BookingRef: ref.BookingRef,
		Reason:     ref.Reason,
		Status:     ref.Status,
		CreatedAt:  ref.CreatedAt.Unix(),
		UpdatedAt:  ref.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert refund: %w", err)
	}

	created := *ref
	created.Email = doc.Email
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *RefundRepository) FindByID(ctx context.Context, id string) (*domain.Refund, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRefundNotFound
	}

	var mr mongoRefund
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRefundNotFound
		}
		return nil, fmt.Errorf("find refund: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RefundRepository) ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Refund, error) {
	return r.find(ctx, principalFilter(principalID, email))
}

func (r *RefundRepository) List(ctx context.Context) ([]*domain.Refund, error) {
	return r.find(ctx, bson.M{})
}

func (r *RefundRepository) SetStatus(ctx context.Context, id, status, note string) (*domain.Refund, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRefundNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"admin_note": note,
		"updated_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update refund: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRefundNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *RefundRepository) LinkByEmail(ctx context.Context, email, principalID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, unlinkedByEmail(email), bson.M{"$set": bson.M{"user": principalID}})
	if err != nil {
		return 0, fmt.Errorf("link refunds: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *RefundRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *RefundRepository) find(ctx context.Context, filter bson.M) ([]*domain.Refund, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find refunds: %w", err)
	}
	defer cur.Close(ctx)

	var refunds []*domain.Refund
	for cur.Next(ctx) {
		var mr mongoRefund
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode refund: %w", err)
		}
		refunds = append(refunds, mr.toDomain())
	}
	return refunds, cur.Err()
}

// EnsureIndexes creates the lookup indexes used by the union query and the
// reconciliation update.
func (r *RefundRepository) EnsureIndexes(ctx context.Context) error {
	return ensureSubmissionIndexes(ctx, r.coll)
}
