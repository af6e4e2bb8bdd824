// Package booking orchestrates booking creation and cancellation: showtime
// lookup, seat validation, atomic reservation, and durable persistence with a
// compensating release when the final step fails.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/filmgate/cinema-booking-api/internal/domain"
	"github.com/filmgate/cinema-booking-api/internal/ledger"
)

// SeatLedger is the slice of the ledger the service depends on.
type SeatLedger interface {
	Reserve(ctx context.Context, showtimeID string, seats []string) (ledger.Reservation, error)
	Release(showtimeID string, seats []string)
}

type Service struct {
	showtimes domain.ShowtimeRepository
	bookings  domain.BookingRepository
	ledger    SeatLedger
	logger    *slog.Logger
}

func NewService(
	showtimes domain.ShowtimeRepository,
	bookings domain.BookingRepository,
	seatLedger SeatLedger,
	logger *slog.Logger) *Service {

	return &Service{
		showtimes: showtimes,
		bookings:  bookings,
		ledger:    seatLedger,
		logger:    logger,
	}
}

type CreateBookingInput struct {
	ShowtimeID    string
	CustomerName  string
	CustomerEmail string
	Seats         []string
}

// Create books seats on a showtime. Either the seats are reserved and a
// confirmed Booking is durably recorded, or neither happens.
//
// Failure modes: domain.ErrShowtimeNotFound, *domain.InvalidSeatError,
// *domain.SeatConflictError, *domain.StorageError.
func (s *Service) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	showtime, err := s.showtimes.GetById(ctx, input.ShowtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrShowtimeNotFound
		}

		return nil, &domain.StorageError{Op: "showtime lookup", Err: err}
	}

	err = domain.ValidateSeats(input.Seats, showtime.Rows, showtime.Cols)
	if err != nil {
		return nil, err
	}

	reservation, err := s.ledger.Reserve(ctx, showtime.ID, input.Seats)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ShowtimeID:    showtime.ID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Seats:         reservation.Seats,
		Status:        domain.BookingStatusConfirmed,
		CreatedAt:     time.Now().UTC(),
	}

	err = s.bookings.Create(ctx, booking)
	if err != nil {
		// The reservation must not outlive a failed persist. Release is pure
		// in-memory work, so it completes even when the client request has
		// already been cancelled.
		s.ledger.Release(reservation.ShowtimeID, reservation.Seats)

		s.logger.Error("released reservation after failed booking persist",
			"showtime_id", reservation.ShowtimeID,
			"reservation_token", reservation.Token,
			"seats", reservation.Seats,
			"error", err)

		return nil, &domain.StorageError{Op: "booking persist", Err: err}
	}

	return booking, nil
}

// Cancel marks a booking cancelled and frees its seats. The status change is
// persisted before the ledger release: a crash between the two over-holds the
// seats, which the ledger rebuild recovers from, while the reverse order could
// sell a seat twice. Cancelling an already-cancelled booking is a no-op.
func (s *Service) Cancel(ctx context.Context, bookingID string) error {
	booking, err := s.bookings.GetById(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrBookingNotFound
		}

		return &domain.StorageError{Op: "booking lookup", Err: err}
	}

	if booking.Status == domain.BookingStatusCancelled {
		return nil
	}

	err = s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusCancelled)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrBookingNotFound
		}

		return &domain.StorageError{Op: "booking cancel", Err: err}
	}

	s.ledger.Release(booking.ShowtimeID, booking.Seats)

	return nil
}
