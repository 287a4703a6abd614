package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

const (
	CollectionUsers         = "users"
	CollectionCaterers      = "caterers"
	CollectionPhotographers = "photographers"
	CollectionAuditLogs     = "audit_logs"
)

type VendorMongoRepository struct {
	caterers      *mongo.Collection
	photographers *mongo.Collection
}

func NewVendorMongoRepository(db *mongo.Database) *VendorMongoRepository {
	return &VendorMongoRepository{
		caterers:      db.Collection(CollectionCaterers),
		photographers: db.Collection(CollectionPhotographers),
	}
}

// --------------------------------------------------
// Caterer
// --------------------------------------------------

func (r *VendorMongoRepository) CreateCaterer(
	ctx context.Context,
	c *models.Caterer,
) error {
	_, err := r.caterers.InsertOne(ctx, c)
	return translate(err, "caterer")
}

func (r *VendorMongoRepository) GetCaterer(
	ctx context.Context,
	id string,
) (*models.Caterer, error) {

	var c models.Caterer
	if err := r.caterers.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err, "caterer")
	}
	return &c, nil
}

func (r *VendorMongoRepository) ApproveCaterer(
	ctx context.Context,
	id string,
) error {

	res, err := r.caterers.UpdateOne(
		ctx,
		bson.M{"_id": id, "isApproved": false},
		bson.M{"$set": bson.M{"isApproved": true}},
	)
	if err != nil {
		return translate(err, "caterer")
	}
	if res.MatchedCount == 0 {
		return httperr.ErrBusiness("already_approved")
	}
	return nil
}

func (r *VendorMongoRepository) ListApprovedCaterers(
	ctx context.Context,
) ([]models.Caterer, error) {

	cursor, err := r.caterers.Find(
		ctx,
		bson.M{"isApproved": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var caterers []models.Caterer
	if err := cursor.All(ctx, &caterers); err != nil {
		return nil, err
	}
	return caterers, nil
}

// --------------------------------------------------
// Photographer
// --------------------------------------------------

func (r *VendorMongoRepository) CreatePhotographer(
	ctx context.Context,
	p *models.Photographer,
) error {
	_, err := r.photographers.InsertOne(ctx, p)
	return translate(err, "photographer")
}

func (r *VendorMongoRepository) ListPhotographers(
	ctx context.Context,
) ([]models.Photographer, error) {

	cursor, err := r.photographers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photographers []models.Photographer
	if err := cursor.All(ctx, &photographers); err != nil {
		return nil, err
	}
	return photographers, nil
}
