package receiptRepo

import (
	"context"
	"errors"

	"corpay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned for unknown receipt lookups.
var ErrNotFound = errors.New("receipt not found")

func (r *mongoReceiptRepo) Create(ctx context.Context, receipt models.Receipt) error {
	_, err := r.coll.InsertOne(ctx, receipt)
	return err
}

func (r *mongoReceiptRepo) GetByID(ctx context.Context, receiptID string) (*models.Receipt, error) {
	return r.findOne(ctx, bson.M{"receipt_id": receiptID})
}

func (r *mongoReceiptRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Receipt, error) {
	return r.findOne(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoReceiptRepo) findOne(ctx context.Context, filter bson.M) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.coll.FindOne(ctx, filter).Decode(&receipt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
