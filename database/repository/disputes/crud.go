package disputeRepo

import (
	"context"

	"corpay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoDisputeRepo) Upsert(ctx context.Context, d models.Dispute) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts)
	return err
}

func (r *mongoDisputeRepo) ListByBookingID(ctx context.Context, bookingID string) ([]models.Dispute, error) {
	return r.list(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoDisputeRepo) ListOpen(ctx context.Context) ([]models.Dispute, error) {
	return r.list(ctx, bson.M{"status": models.DisputeOpen})
}

func (r *mongoDisputeRepo) list(ctx context.Context, filter bson.M) ([]models.Dispute, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var disputes []models.Dispute
	if err := cursor.All(ctx, &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}
