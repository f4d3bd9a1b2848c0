package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *MongoRepo) CreateUser(ctx context.Context, u *models.User) error {
	u.Normalize()
	u.CreatedAt, u.UpdatedAt = now(), now()
	_, err := r.Users.InsertOne(ctx, u)
	return translate(err)
}

func (r *MongoRepo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.Users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	user.Normalize()
	return &user, nil
}

func (r *MongoRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"_id": id})
}

func (r *MongoRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"gmail": email})
}

func (r *MongoRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	n, err := r.Users.CountDocuments(ctx,
		bson.M{"gmail": email, "_id": bson.M{"$ne": exceptID}},
		options.Count().SetLimit(1))
	return n > 0, err
}

func (r *MongoRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.Users, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	for i := range users {
		users[i].Normalize()
	}
	return users, err
}

func (r *MongoRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	users, err := findAll[models.User](ctx, r.Users, bson.M{"_id": bson.M{"$in": ids}})
	for i := range users {
		users[i].Normalize()
	}
	return users, err
}

func (r *MongoRepo) SaveUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = now()
	res, err := r.Users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) updateUser(ctx context.Context, filter bson.M, update bson.M) (*models.User, error) {
	if set, ok := update["$set"].(bson.M); ok {
		set["updatedAt"] = now()
	} else {
		update["$set"] = bson.M{"updatedAt": now()}
	}

	var user models.User
	if err := r.Users.FindOneAndUpdate(ctx, filter, update, afterUpdate).Decode(&user); err != nil {
		return nil, translate(err)
	}
	user.Normalize()
	return &user, nil
}

func (r *MongoRepo) AddAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error) {
	return r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"addresses": addr}})
}

func (r *MongoRepo) UpdateAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error) {
	return r.updateUser(ctx,
		bson.M{"_id": userID, "addresses._id": addr.ID},
		bson.M{"$set": bson.M{
			"addresses.$.city":    addr.City,
			"addresses.$.state":   addr.State,
			"addresses.$.zipcode": addr.Zipcode,
		}})
}

func (r *MongoRepo) RemoveAddress(ctx context.Context, userID, addressID string) (*models.User, error) {
	return r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"addresses": bson.M{"_id": addressID}}})
}

func (r *MongoRepo) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{"wishlist": productID}})
}

func (r *MongoRepo) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"wishlist": productID}})
}

func (r *MongoRepo) PushOrder(ctx context.Context, userID, orderID string) error {
	_, err := r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"orders": orderID}})
	return err
}

func (r *MongoRepo) PullOrder(ctx context.Context, userID, orderID string) error {
	_, err := r.updateUser(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"orders": orderID}})
	return err
}
