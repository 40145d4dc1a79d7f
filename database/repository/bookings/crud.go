package bookingRepo

import (
	"context"
	"errors"

	"corpay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned for unknown booking ids.
var ErrNotFound = errors.New("booking not found")

func (r *mongoBookingRepo) Create(ctx context.Context, b models.Booking) error {
	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) Update(ctx context.Context, b models.Booking) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns bookings still subject to SLA monitoring. Used by
// the background poller; the terminal and draft states are skipped.
func (r *mongoBookingRepo) ListActive(ctx context.Context) ([]models.Booking, error) {
	filter := bson.M{"state": bson.M{"$in": []models.BookingState{
		models.StatePendingConfirmation,
		models.StateConfirmed,
		models.StateInProgress,
	}}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
