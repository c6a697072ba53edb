package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Query fragments shared by the three submission collections (refunds,
// inquiries, feedback).

// principalFilter matches every document belonging to a principal: linked by
// user id, created by them, or carrying their email. The union keeps
// anonymously submitted records visible once the submitter registers.
func principalFilter(principalID, email string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user": principalID},
		bson.M{"created_by": principalID},
		bson.M{"email": strings.ToLower(email)},
	}}
}

// unlinkedByEmail matches documents whose email equals the given address and
// whose user link has never been set. Used by the reconciliation update so
// re-runs touch nothing.
func unlinkedByEmail(email string) bson.M {
	return bson.M{
		"email": strings.ToLower(email),
		"$or": bson.A{
			bson.M{"user": ""},
			bson.M{"user": bson.M{"$exists": false}},
		},
	}
}

// ensureSubmissionIndexes creates the three lookup indexes every submission
// collection needs: user link, creator link, and email.
func ensureSubmissionIndexes(ctx context.Context, coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
