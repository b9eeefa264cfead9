package repository

import (
	"context"
	"fmt"
	"time"

	"fieldscan-scheduler/internal/domain/entity"
	"fieldscan-scheduler/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAuditLogRepository implements the AuditLogRepository interface
type MongoAuditLogRepository struct {
	collection *mongo.Collection
}

// auditEventDocument is the stored shape of one audit event
type auditEventDocument struct {
	EventType     string                 `bson:"eventType"`
	CorrelationID string                 `bson:"correlationId"`
	Payload       map[string]interface{} `bson:"payload"`
	CreatedAt     time.Time              `bson:"createdAt"`
}

// NewMongoAuditLogRepository creates a new MongoDB audit log repository
func NewMongoAuditLogRepository(db *mongo.Database) repository.AuditLogRepository {
	collection := db.Collection("audit_events")

	ctx := context.Background()

	eventTypeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "eventType", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	correlationIndex := mongo.IndexModel{
		Keys: bson.M{"correlationId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{eventTypeIndex, correlationIndex})

	return &MongoAuditLogRepository{
		collection: collection,
	}
}

// Append stores one audit event
func (r *MongoAuditLogRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := auditEventDocument{
		EventType:     entry.EventType,
		CorrelationID: entry.CorrelationID,
		Payload:       entry.Payload,
		CreatedAt:     createdAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to append audit event %s: %w", entry.EventType, err)
	}
	return nil
}
