package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID            string
	ShowtimeID    string
	CustomerName  string
	CustomerEmail string
	Seats         []string
	Status        BookingStatus
	CreatedAt     time.Time
}

type BookingFilters struct {
	CustomerEmail string
	ShowtimeID    string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetAll(ctx context.Context, filters BookingFilters) ([]*Booking, error)
	GetById(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status BookingStatus) error

	// GetConfirmedSeatsByShowtime returns the union of seats across all confirmed
	// bookings of a showtime. The ledger uses it to rebuild its state after restart.
	GetConfirmedSeatsByShowtime(ctx context.Context, showtimeID string) ([]string, error)
}
