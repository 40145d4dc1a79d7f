package catalogRepo

import (
	"context"

	"corpay/database"
	"corpay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository provides read access to the immutable service and
// vendor catalog. The catalog provider itself is an external system;
// this repository only mirrors its records.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*models.ServiceDefinition, error)
	GetVendor(ctx context.Context, id string) (*models.Vendor, error)
	ListServices(ctx context.Context) ([]models.ServiceDefinition, error)
	Seed(ctx context.Context, services []models.ServiceDefinition, vendors []models.Vendor) error
}

type mongoCatalogRepo struct {
	services *mongo.Collection
	vendors  *mongo.Collection
}

// NewMongoCatalogRepo returns a CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("corpay")
	return &mongoCatalogRepo{
		services: db.Collection("services"),
		vendors:  db.Collection("vendors"),
	}
}
