package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/storefront/internal/models"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})

func normalizeOrders(orders []models.Order) {
	for i := range orders {
		orders[i].Normalize()
	}
}

func (r *MongoRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	o.Normalize()
	o.CreatedAt, o.UpdatedAt = now(), now()
	_, err := r.Orders.InsertOne(ctx, o)
	return translate(err)
}

func (r *MongoRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	order.Normalize()
	return &order, nil
}

func (r *MongoRepo) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_associated"] = userID
	}
	orders, err := findAll[models.Order](ctx, r.Orders, filter, newestFirst)
	normalizeOrders(orders)
	return orders, err
}

func (r *MongoRepo) GetOrdersByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	orders, err := findAll[models.Order](ctx, r.Orders, bson.M{"_id": bson.M{"$in": ids}}, newestFirst)
	normalizeOrders(orders)
	return orders, err
}

func (r *MongoRepo) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	var order models.Order
	err := r.Orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now()}},
		afterUpdate).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	order.Normalize()
	return &order, nil
}

func (r *MongoRepo) DeleteOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.Orders.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	order.Normalize()
	return &order, nil
}

func (r *MongoRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	n, err := r.Orders.CountDocuments(ctx,
		bson.M{"user_associated": userID, "item_associated.productId": productID},
		options.Count().SetLimit(1))
	return n > 0, err
}
