package receiptRepo

import (
	"context"

	"corpay/database"
	"corpay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReceiptRepository stores immutable receipt snapshots. There is no
// update method on purpose.
type ReceiptRepository interface {
	Create(ctx context.Context, r models.Receipt) error
	GetByID(ctx context.Context, receiptID string) (*models.Receipt, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Receipt, error)
}

type mongoReceiptRepo struct {
	coll *mongo.Collection
}

// NewMongoReceiptRepo returns a ReceiptRepository backed by MongoDB.
func NewMongoReceiptRepo() ReceiptRepository {
	db := database.MongoClient.Database("corpay")
	return &mongoReceiptRepo{
		coll: db.Collection("receipts"),
	}
}
