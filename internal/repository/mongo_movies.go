package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

type MongoMovieRepository struct {
	db *mongo.Database
}

func NewMongoMovieRepository(db *mongo.Database) *MongoMovieRepository {
	return &MongoMovieRepository{
		db: db,
	}
}

type movieDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	DurationMins int                `bson:"duration_mins"`
	Genre        string             `bson:"genre,omitempty"`
	Rating       string             `bson:"rating,omitempty"`
	PosterURL    string             `bson:"poster_url,omitempty"`
}

func (d movieDoc) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		DurationMins: d.DurationMins,
		Genre:        d.Genre,
		Rating:       d.Rating,
		PosterURL:    d.PosterURL,
	}
}

func (m *MongoMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	doc := movieDoc{
		Title:        movie.Title,
		Description:  movie.Description,
		DurationMins: movie.DurationMins,
		Genre:        movie.Genre,
		Rating:       movie.Rating,
		PosterURL:    movie.PosterURL,
	}

	res, err := m.db.Collection(moviesCollection).InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	movie.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return nil
}

func (m *MongoMovieRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	cursor, err := m.db.Collection(moviesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []movieDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	movies := make([]*domain.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = doc.toDomain()
	}

	return movies, nil
}

func (m *MongoMovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc movieDoc

	err = m.db.Collection(moviesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return doc.toDomain(), nil
}
