package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

type MongoBookingRepository struct {
	db *mongo.Database
}

func NewMongoBookingRepository(db *mongo.Database) *MongoBookingRepository {
	return &MongoBookingRepository{
		db: db,
	}
}

type bookingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ShowtimeID    string             `bson:"showtime_id"`
	CustomerName  string             `bson:"customer_name"`
	CustomerEmail string             `bson:"customer_email"`
	Seats         []string           `bson:"seats"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:            d.ID.Hex(),
		ShowtimeID:    d.ShowtimeID,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Seats:         d.Seats,
		Status:        domain.BookingStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

func (m *MongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	doc := bookingDoc{
		ShowtimeID:    booking.ShowtimeID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Seats:         booking.Seats,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}

	res, err := m.db.Collection(bookingsCollection).InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	booking.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return nil
}

func (m *MongoBookingRepository) GetAll(ctx context.Context, filters domain.BookingFilters) ([]*domain.Booking, error) {
	filter := bson.M{}
	if filters.CustomerEmail != "" {
		filter["customer_email"] = filters.CustomerEmail
	}
	if filters.ShowtimeID != "" {
		filter["showtime_id"] = filters.ShowtimeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.db.Collection(bookingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, len(docs))
	for i, doc := range docs {
		bookings[i] = doc.toDomain()
	}

	return bookings, nil
}

func (m *MongoBookingRepository) GetById(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc bookingDoc

	err = m.db.Collection(bookingsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return doc.toDomain(), nil
}

func (m *MongoBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	res, err := m.db.Collection(bookingsCollection).UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (m *MongoBookingRepository) GetConfirmedSeatsByShowtime(ctx context.Context, showtimeID string) ([]string, error) {
	filter := bson.M{
		"showtime_id": showtimeID,
		"status":      string(domain.BookingStatusConfirmed),
	}

	opts := options.Find().SetProjection(bson.M{"seats": 1})

	cursor, err := m.db.Collection(bookingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var seats []string

	for _, doc := range docs {
		for _, seat := range doc.Seats {
			if !seen[seat] {
				seen[seat] = true
				seats = append(seats, seat)
			}
		}
	}

	return seats, nil
}
