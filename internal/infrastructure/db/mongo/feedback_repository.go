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

const feedbackCollection = "feedback"

// FeedbackRepository is the Mongo-backed feedback store.
type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(feedbackCollection)}
}

type mongoFeedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Rating    int                `bson:"rating"`
	Message   string             `bson:"message,omitempty"`
	Status    string             `bson:"status"`
	Response  string             `bson:"response,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mf *mongoFeedback) toDomain() *domain.Feedback {
	return &domain.Feedback{
		ID: mf.ID.Hex(),
		SubmissionLink: domain.SubmissionLink{
			UserID:    mf.UserID,
			CreatedBy: mf.CreatedBy,
			Email:     mf.Email,
		},
		Name:      mf.Name,
		Rating:    mf.Rating,
		Message:   mf.Message,
		Status:    mf.Status,
		Response:  mf.Response,
		CreatedAt: unixToTime(mf.CreatedAt),
		UpdatedAt: unixToTime(mf.UpdatedAt),
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	doc := mongoFeedback{
		UserID:    f.UserID,
		CreatedBy: f.CreatedBy,
		Email:     strings.ToLower(f.Email),
		Name:      f.Name,
		Rating:    f.Rating,
		Message:   f.Message,
		Status:    f.Status,
		CreatedAt: f.CreatedAt.Unix(),
		UpdatedAt: f.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	created := *f
	created.Email = doc.Email
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFeedbackNotFound
	}

	var mf mongoFeedback
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FeedbackRepository) ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Feedback, error) {
	return r.find(ctx, principalFilter(principalID, email))
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*domain.Feedback, error) {
	return r.find(ctx, bson.M{})
}

func (r *FeedbackRepository) Respond(ctx context.Context, id, response string) (*domain.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFeedbackNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     domain.StatusAnswered,
		"response":   response,
		"updated_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrFeedbackNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *FeedbackRepository) LinkByEmail(ctx context.Context, email, principalID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, unlinkedByEmail(email), bson.M{"$set": bson.M{"user": principalID}})
	if err != nil {
		return 0, fmt.Errorf("link feedback: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *FeedbackRepository) find(ctx context.Context, filter bson.M) ([]*domain.Feedback, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Feedback
	for cur.Next(ctx) {
		var mf mongoFeedback
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		items = append(items, mf.toDomain())
	}
	return items, cur.Err()
}

func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	return ensureSubmissionIndexes(ctx, r.coll)
}
