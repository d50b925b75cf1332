package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

const auditCollection = "auth_events"

// MongoAuditRepository stores the auth event trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Action    string             `bson:"action"`
	Result    string             `bson:"result"`
	Detail    string             `bson:"detail,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Username:  event.Username,
		Action:    event.Action,
		Result:    event.Result,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find auth events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAuthEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode auth events: %w", err)
	}

	events := make([]domain.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuthEvent{
			ID:        d.ID.Hex(),
			Username:  d.Username,
			Action:    d.Action,
			Result:    d.Result,
			Detail:    d.Detail,
			CreatedAt: unixToTime(d.CreatedAt),
		})
	}
	return events, nil
}
