package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

type AuditMongoRepository struct {
	logs *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Database) *AuditMongoRepository {
	return &AuditMongoRepository{logs: db.Collection(CollectionAuditLogs)}
}

func (r *AuditMongoRepository) CreateAuditLog(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	_, err := r.logs.InsertOne(ctx, entry)
	return err
}

func (r *AuditMongoRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, int64, error) {

	f = f.Normalize()
	query := bson.M{}

	if f.Action != "" {
		query["action"] = f.Action
	}
	if f.Entity != "" {
		query["entity"] = f.Entity
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		created := bson.M{}
		if !f.From.IsZero() {
			created["$gte"] = f.From
		}
		if !f.To.IsZero() {
			created["$lte"] = f.To
		}
		query["createdAt"] = created
	}

	total, err := r.logs.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.Limit))

	cur, err := r.logs.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
