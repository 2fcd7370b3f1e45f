package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

const auditCollection = "audit_events"

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// MongoAuditRepository stores the append-only audit trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Action    string             `bson:"action"`
	ActorID   int                `bson:"actor_id"`
	SubjectID int                `bson:"subject_id"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp int64              `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Action:    string(event.Action),
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) ListBySubject(ctx context.Context, subjectID int, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"subject_id": subjectID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AuditEvent
	for cur.Next(ctx) {
		var me mongoAuditEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		out = append(out, domain.AuditEvent{
			ID:        me.ID.Hex(),
			Action:    domain.AuditAction(me.Action),
			ActorID:   me.ActorID,
			SubjectID: me.SubjectID,
			Detail:    me.Detail,
			Timestamp: unixToTime(me.Timestamp),
		})
	}
	return out, cur.Err()
}
