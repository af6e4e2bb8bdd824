// Package repository implements the domain repository interfaces on MongoDB.
// Collection names follow the original deployment's convention: the lowercase
// entity name.
package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

const (
	moviesCollection    = "movie"
	showtimesCollection = "showtime"
	bookingsCollection  = "booking"
)

// objectIDFromHex maps malformed ids to ErrRecordNotFound: externally ids are
// opaque strings, and a string that cannot name a document does not name one.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrRecordNotFound
	}

	return oid, nil
}
