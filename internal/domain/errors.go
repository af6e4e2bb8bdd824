package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")
)

// InvalidSeatError reports seat codes that do not belong to a showtime's grid,
// duplicates within one request, or an empty seat list.
type InvalidSeatError struct {
	Seats  []string
	Reason string
}

func (e *InvalidSeatError) Error() string {
	if len(e.Seats) == 0 {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Seats, ", "))
}

// SeatConflictError reports every requested seat that already belongs to a
// confirmed booking, so that clients can re-offer alternatives.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat(s) already booked: %s", strings.Join(e.Seats, ", "))
}

// StorageError marks persistence failures as transient so that handlers can
// surface them as retryable, distinct from the terminal booking errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
