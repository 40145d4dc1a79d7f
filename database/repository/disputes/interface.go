package disputeRepo

import (
	"context"

	"corpay/database"
	"corpay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DisputeRepository mirrors booking disputes into their own collection
// so presentation surfaces can list them without loading bookings.
type DisputeRepository interface {
	Upsert(ctx context.Context, d models.Dispute) error
	ListByBookingID(ctx context.Context, bookingID string) ([]models.Dispute, error)
	ListOpen(ctx context.Context) ([]models.Dispute, error)
}

type mongoDisputeRepo struct {
	coll *mongo.Collection
}

// NewMongoDisputeRepo returns a DisputeRepository backed by MongoDB.
func NewMongoDisputeRepo() DisputeRepository {
	db := database.MongoClient.Database("corpay")
	return &mongoDisputeRepo{
		coll: db.Collection("disputes"),
	}
}
