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

const inquiriesCollection = "inquiries"

// InquiryRepository is the Mongo-backed inquiry store.
type InquiryRepository struct {
	coll *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{coll: db.Collection(inquiriesCollection)}
}

type mongoInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Subject   string             `bson:"subject,omitempty"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	Response  string             `bson:"response,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mi *mongoInquiry) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID: mi.ID.Hex(),
		SubmissionLink: domain.SubmissionLink{
			UserID:    mi.UserID,
			CreatedBy: mi.CreatedBy,
			Email:     mi.Email,
		},
		Name:      mi.Name,
		Subject:   mi.Subject,
		Message:   mi.Message,
		Status:    mi.Status,
		Response:  mi.Response,
		CreatedAt: unixToTime(mi.CreatedAt),
		UpdatedAt: unixToTime(mi.UpdatedAt),
	}
}

func (r *InquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error) {
	doc := mongoInquiry{
		UserID:    inq.UserID,
		CreatedBy: inq.CreatedBy,
		Email:     strings.ToLower(inq.Email),
		Name:      inq.Name,
		Subject:   inq.Subject,
		Message:   inq.Message,
		Status:    inq.Status,
		CreatedAt: inq.CreatedAt.Unix(),
		UpdatedAt: inq.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}

	created := *inq
	created.Email = doc.Email
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInquiryNotFound
	}

	var mi mongoInquiry
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *InquiryRepository) ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Inquiry, error) {
	return r.find(ctx, principalFilter(principalID, email))
}

func (r *InquiryRepository) List(ctx context.Context) ([]*domain.Inquiry, error) {
	return r.find(ctx, bson.M{})
}

func (r *InquiryRepository) Respond(ctx context.Context, id, response string) (*domain.Inquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInquiryNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     domain.StatusAnswered,
		"response":   response,
		"updated_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrInquiryNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *InquiryRepository) LinkByEmail(ctx context.Context, email, principalID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, unlinkedByEmail(email), bson.M{"$set": bson.M{"user": principalID}})
	if err != nil {
		return 0, fmt.Errorf("link inquiries: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *InquiryRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *InquiryRepository) find(ctx context.Context, filter bson.M) ([]*domain.Inquiry, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find inquiries: %w", err)
	}
	defer cur.Close(ctx)

	var inquiries []*domain.Inquiry
	for cur.Next(ctx) {
		var mi mongoInquiry
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode inquiry: %w", err)
		}
		inquiries = append(inquiries, mi.toDomain())
	}
	return inquiries, cur.Err()
}

func (r *InquiryRepository) EnsureIndexes(ctx context.Context) error {
	return ensureSubmissionIndexes(ctx, r.coll)
}
