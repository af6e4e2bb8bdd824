package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

// Grid defaults for showtimes created without explicit dimensions, matching
// the auditorium layout most screens use.
const (
	DefaultRows = 8
	DefaultCols = 12
)

var defaultPrice = decimal.NewFromInt(12)

type CreateShowtimeRequest struct {
	MovieID    string           `json:"movie_id" validate:"required"`
	StartTime  time.Time        `json:"start_time" validate:"required"`
	Auditorium string           `json:"auditorium" validate:"required,max=50"`
	Rows       int              `json:"rows" validate:"omitempty,min=1,max=26"`
	Cols       int              `json:"cols" validate:"omitempty,min=1,max=30"`
	Price      *decimal.Decimal `json:"price"`
}

type ShowtimeResponse struct {
	ID         string          `json:"_id"`
	MovieID    string          `json:"movie_id"`
	StartTime  time.Time       `json:"start_time"`
	Auditorium string          `json:"auditorium"`
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	Price      decimal.Decimal `json:"price"`
}

func (app *Application) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	filters := domain.ShowtimeFilters{
		MovieID: r.URL.Query().Get("movie_id"),
	}

	showtimes, err := app.showtimeRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	resp := make([]ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		resp[i] = toShowtimeResponse(showtime)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var input CreateShowtimeRequest

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

	if input.Rows == 0 {
		input.Rows = DefaultRows
	}
	if input.Cols == 0 {
		input.Cols = DefaultCols
	}
	price := defaultPrice
	if input.Price != nil {
		price = *input.Price
	}

	if price.IsNegative() {
		app.validationIssuesResponse(w, r, []ValidationIssue{
			{Field: "price", Issue: "must be zero or greater"},
		})
		return
	}

	// The seat grid is derived from the movie catalog, so a showtime must not
	// point at a movie that does not exist.
	_, err = app.movieRepo.GetById(r.Context(), input.MovieID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.validationIssuesResponse(w, r, []ValidationIssue{
				{Field: "movie_id", Issue: "must reference an existing movie"},
			})
			return
		}

		app.storageFailureResponse(w, r, err)
		return
	}

	showtime := &domain.Showtime{
		MovieID:    input.MovieID,
		StartTime:  input.StartTime,
		Auditorium: input.Auditorium,
		Rows:       input.Rows,
		Cols:       input.Cols,
		Price:      price,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, IDResponse{ID: showtime.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type SeatMapResponse struct {
	ShowtimeID string    `json:"showtime_id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	SeatRows   []SeatRow `json:"seat_rows"`
}

type SeatRow struct {
	Row   string       `json:"row"`
	Seats []SeatStatus `json:"seats"`
}

type SeatStatus struct {
	Code      string `json:"code"`
	Available bool   `json:"available"`
}

func (app *Application) GetShowtimeSeats(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "showtimeID")

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.errorResponse(w, r, http.StatusNotFound, ErrKindShowtimeNotFound, "showtime not found")
			return
		}

		app.storageFailureResponse(w, r, err)
		return
	}

	taken, err := app.ledger.CurrentlyTaken(r.Context(), showtime.ID)
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	takenSet := make(map[string]bool, len(taken))
	for _, seat := range taken {
		takenSet[seat] = true
	}

	resp := SeatMapResponse{
		ShowtimeID: showtime.ID,
		Rows:       showtime.Rows,
		Cols:       showtime.Cols,
		SeatRows:   toSeatRows(showtime, takenSet),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toSeatRows groups the grid's seat codes by row in a single pass; SeatCodes
// yields them row by row already.
func toSeatRows(showtime *domain.Showtime, taken map[string]bool) []SeatRow {
	codes := domain.SeatCodes(showtime.Rows, showtime.Cols)
	if len(codes) == 0 {
		return nil
	}

	var seatRows []SeatRow
	currentRow := SeatRow{Row: codes[0][:1]}

	for _, code := range codes {
		if row := code[:1]; row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = SeatRow{Row: row}
		}

		currentRow.Seats = append(currentRow.Seats, SeatStatus{
			Code:      code,
			Available: !taken[code],
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}

func toShowtimeResponse(showtime *domain.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:         showtime.ID,
		MovieID:    showtime.MovieID,
		StartTime:  showtime.StartTime,
		Auditorium: showtime.Auditorium,
		Rows:       showtime.Rows,
		Cols:       showtime.Cols,
		Price:      showtime.Price,
	}
}
