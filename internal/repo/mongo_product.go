package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/storefront/internal/models"
)

var byCreated = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

func normalizeProducts(items []models.Product) {
	for i := range items {
		items[i].Normalize()
	}
}

func (r *MongoRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items, err := findAll[models.Product](ctx, r.Products, bson.M{}, byCreated)
	normalizeProducts(items)
	return items, err
}

func (r *MongoRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.Products.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	product.Normalize()
	return &product, nil
}

func (r *MongoRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	items, err := findAll[models.Product](ctx, r.Products, bson.M{"_id": bson.M{"$in": ids}}, byCreated)
	normalizeProducts(items)
	return items, err
}

func (r *MongoRepo) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	items, err := findAll[models.Product](ctx, r.Products, bson.M{"category": containsRegex(category)}, byCreated)
	normalizeProducts(items)
	return items, err
}

func (r *MongoRepo) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	re := containsRegex(q)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"description": re},
		bson.M{"category": re},
	}}
	items, err := findAll[models.Product](ctx, r.Products, filter, byCreated)
	normalizeProducts(items)
	return items, err
}

func (r *MongoRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	p.Normalize()
	p.CreatedAt, p.UpdatedAt = now(), now()
	_, err := r.Products.InsertOne(ctx, p)
	return translate(err)
}

func (r *MongoRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = now()
	res, err := r.Products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	res, err := r.Products.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": delta}, "$set": bson.M{"updatedAt": now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) AppendReview(ctx context.Context, id, blob string) (*models.Product, error) {
	var product models.Product
	err := r.Products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"rate_comments": blob}, "$set": bson.M{"updatedAt": now()}},
		afterUpdate).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	product.Normalize()
	return &product, nil
}
