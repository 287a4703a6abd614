package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

type UserMongoRepository struct {
	users *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{users: db.Collection(CollectionUsers)}
}

func (r *UserMongoRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	_, err := r.users.InsertOne(ctx, u)
	return translate(err, "user")
}

func (r *UserMongoRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var u models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserMongoRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}
