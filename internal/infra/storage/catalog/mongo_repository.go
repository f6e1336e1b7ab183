package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const (
	productCollection = "product"
	catalogDocumentID = "catalog"
	mongoOpTimeout    = 5 * time.Second
)

type catalogDocument struct {
	ID             string `bson:"_id"`
	domain.Catalog `bson:",inline"`
}

// MongoRepository каталог хранится одним документом коллекции product
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoRepository создает репозиторий каталога поверх базы MongoDB
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		coll: db.Collection(productCollection),
		now:  time.Now,
	}
}

// Get возвращает каталог
func (r *MongoRepository) Get(ctx context.Context) (*domain.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var doc catalogDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": catalogDocumentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("%w: Get - find catalog: %v", ErrExecQuery, err)
	}

	catalog := doc.Catalog
	if catalog.Studios == nil {
		catalog.Studios = []domain.Studio{}
	}
	if catalog.Services == nil {
		catalog.Services = []domain.Service{}
	}
	return &catalog, nil
}

// Replace заменяет документ каталога целиком (upsert)
func (r *MongoRepository) Replace(ctx context.Context, catalog *domain.Catalog) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	doc := catalogDocument{ID: catalogDocumentID, Catalog: *catalog}
	doc.UpdatedAt = r.now().UTC()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": catalogDocumentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: Replace - %v", ErrExecQuery, err)
	}

	catalog.UpdatedAt = doc.UpdatedAt
	return nil
}
