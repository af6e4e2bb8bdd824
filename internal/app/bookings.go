package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filmgate/cinema-booking-api/internal/booking"
	"github.com/filmgate/cinema-booking-api/internal/domain"
)

type CreateBookingRequest struct {
	ShowtimeID    string   `json:"showtime_id" validate:"required"`
	CustomerName  string   `json:"customer_name" validate:"required,max=100"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
	Seats         []string `json:"seats" validate:"required,min=1,dive,seat_code"`
}

type BookingResponse struct {
	ID            string    `json:"_id"`
	ShowtimeID    string    `json:"showtime_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Seats         []string  `json:"seats"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (app *Application) ListBookings(w http.ResponseWriter, r *http.Request) {
	filters := domain.BookingFilters{
		CustomerEmail: r.URL.Query().Get("email"),
		ShowtimeID:    r.URL.Query().Get("showtime_id"),
	}

	bookings, err := app.bookingRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	created, err := app.booking.Create(r.Context(), booking.CreateBookingInput{
		ShowtimeID:    input.ShowtimeID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Seats:         input.Seats,
	})

	if err != nil {
		var (
			invalidSeatErr *domain.InvalidSeatError
			conflictErr    *domain.SeatConflictError
			storageErr     *domain.StorageError
		)

		switch {
		case errors.Is(err, domain.ErrShowtimeNotFound):
			app.errorResponse(w, r, http.StatusNotFound, ErrKindShowtimeNotFound, "showtime not found")

		case errors.As(err, &invalidSeatErr):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, ErrKindInvalidSeat, invalidSeatErr.Error())

		case errors.As(err, &conflictErr):
			app.seatConflictResponse(w, r, conflictErr.Seats)

		case errors.As(err, &storageErr):
			app.storageFailureResponse(w, r, err)

		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, IDResponse{ID: created.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")

	err := app.booking.Cancel(r.Context(), bookingID)
	if err != nil {
		var storageErr *domain.StorageError

		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			app.errorResponse(w, r, http.StatusNotFound, ErrKindBookingNotFound, "booking not found")

		case errors.As(err, &storageErr):
			app.storageFailureResponse(w, r, err)

		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID,
		ShowtimeID:    booking.ShowtimeID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Seats:         booking.Seats,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}
