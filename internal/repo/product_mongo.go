package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teran1416/InventarioApp/internal/models"
)

// ProductsCollection is the Mongo collection holding product documents.
const ProductsCollection = "products"

type productDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Description       string             `bson:"description"`
	Quantity          int                `bson:"quantity"`
	Price             float64            `bson:"price"`
	MinStockThreshold int                `bson:"minStockThreshold"`
	User              primitive.ObjectID `bson:"user"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (d productDocument) toModel() models.Product {
	return models.Product{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Description:       d.Description,
		Quantity:          d.Quantity,
		Price:             d.Price,
		MinStockThreshold: d.MinStockThreshold,
		Owner:             d.User.Hex(),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection(ProductsCollection)}
}

// EnsureIndexes creates the owner index used by every product query.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}

// ownerFilter builds the base filter for owner; ok is false when owner can
// never match a stored document.
func ownerFilter(owner string) (bson.M, bool) {
	ownerID, err := primitive.ObjectIDFromHex(owner)
	if err != nil {
		return nil, false
	}
	return bson.M{"user": ownerID}, true
}

func byIDAndOwner(owner, id string) (bson.M, bool) {
	filter, ok := ownerFilter(owner)
	if !ok {
		return nil, false
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	filter["_id"] = objID
	return filter, true
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ownerID, err := primitive.ObjectIDFromHex(p.Owner)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid owner id %q: %w", p.Owner, err)
	}

	now := time.Now().UTC()
	doc := productDocument{
		ID:                primitive.NewObjectID(),
		Name:              p.Name,
		Description:       p.Description,
		Quantity:          p.Quantity,
		Price:             p.Price,
		MinStockThreshold: p.MinStockThreshold,
		User:              ownerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) GetAll(ctx context.Context, owner string) ([]models.Product, error) {
	filter, ok := ownerFilter(owner)
	if !ok {
		return []models.Product{}, nil
	}
	return r.find(ctx, filter)
}

func (r *MongoProductRepository) GetByID(ctx context.Context, owner, id string) (models.Product, error) {
	filter, ok := byIDAndOwner(owner, id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc productDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	filter, ok := byIDAndOwner(p.Owner, p.ID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":              p.Name,
		"description":       p.Description,
		"quantity":          p.Quantity,
		"price":             p.Price,
		"minStockThreshold": p.MinStockThreshold,
		"updatedAt":         time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, owner, id string) error {
	filter, ok := byIDAndOwner(owner, id)
	if !ok {
		return ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetLowStock compares two fields of the same document, hence $expr.
func (r *MongoProductRepository) GetLowStock(ctx context.Context, owner string) ([]models.Product, error) {
	filter, ok := ownerFilter(owner)
	if !ok {
		return []models.Product{}, nil
	}
	filter["$expr"] = bson.M{"$lte": bson.A{"$quantity", "$minStockThreshold"}}
	return r.find(ctx, filter)
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}
