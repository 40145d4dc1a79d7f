package bookingRepo

import (
	"context"

	"corpay/database"
	"corpay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists booking aggregates, timeline included.
type BookingRepository interface {
	Create(ctx context.Context, b models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, b models.Booking) error
	ListActive(ctx context.Context) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("corpay")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
