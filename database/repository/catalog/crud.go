package catalogRepo

import (
	"context"
	"errors"

	"corpay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned for unknown catalog ids.
var ErrNotFound = errors.New("catalog entry not found")

func (r *mongoCatalogRepo) GetService(ctx context.Context, id string) (*models.ServiceDefinition, error) {
	var svc models.ServiceDefinition
	err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *mongoCatalogRepo) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	err := r.vendors.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoCatalogRepo) ListServices(ctx context.Context) ([]models.ServiceDefinition, error) {
	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.ServiceDefinition
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Seed upserts catalog records so the server is usable out of the box.
func (r *mongoCatalogRepo) Seed(ctx context.Context, services []models.ServiceDefinition, vendors []models.Vendor) error {
	opts := options.Replace().SetUpsert(true)
	for _, svc := range services {
		if _, err := r.services.ReplaceOne(ctx, bson.M{"id": svc.ID}, svc, opts); err != nil {
			return err
		}
	}
	for _, v := range vendors {
		if _, err := r.vendors.ReplaceOne(ctx, bson.M{"id": v.ID}, v, opts); err != nil {
			return err
		}
	}
	return nil
}
