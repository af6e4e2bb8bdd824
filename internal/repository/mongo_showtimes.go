package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

type MongoShowtimeRepository struct {
	db *mongo.Database
}

func NewMongoShowtimeRepository(db *mongo.Database) *MongoShowtimeRepository {
	return &MongoShowtimeRepository{
		db: db,
	}
}

type showtimeDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	MovieID    string               `bson:"movie_id"`
	StartTime  time.Time            `bson:"start_time"`
	Auditorium string               `bson:"auditorium"`
	Rows       int                  `bson:"rows"`
	Cols       int                  `bson:"cols"`
	Price      primitive.Decimal128 `bson:"price"`
}

func (d showtimeDoc) toDomain() (*domain.Showtime, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, err
	}

	return &domain.Showtime{
		ID:         d.ID.Hex(),
		MovieID:    d.MovieID,
		StartTime:  d.StartTime,
		Auditorium: d.Auditorium,
		Rows:       d.Rows,
		Cols:       d.Cols,
		Price:      price,
	}, nil
}

func (m *MongoShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	price, err := primitive.ParseDecimal128(showtime.Price.String())
	if err != nil {
		return err
	}

	doc := showtimeDoc{
		MovieID:    showtime.MovieID,
		StartTime:  showtime.StartTime.UTC(),
		Auditorium: showtime.Auditorium,
		Rows:       showtime.Rows,
		Cols:       showtime.Cols,
		Price:      price,
	}

	res, err := m.db.Collection(showtimesCollection).InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	showtime.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return nil
}

func (m *MongoShowtimeRepository) GetAll(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
	filter := bson.M{}
	if filters.MovieID != "" {
		filter["movie_id"] = filters.MovieID
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := m.db.Collection(showtimesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []showtimeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	showtimes := make([]*domain.Showtime, len(docs))
	for i, doc := range docs {
		showtime, err := doc.toDomain()
		if err != nil {
			return nil, err
		}

		showtimes[i] = showtime
	}

	return showtimes, nil
}

func (m *MongoShowtimeRepository) GetById(ctx context.Context, id string) (*domain.Showtime, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc showtimeDoc

	err = m.db.Collection(showtimesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return doc.toDomain()
}
