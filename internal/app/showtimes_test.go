package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmgate/cinema-booking-api/internal/domain"
	"github.com/filmgate/cinema-booking-api/internal/mocks"
)

func knownMovieRepo() *mocks.MovieRepository {
	return &mocks.MovieRepository{
		GetByIdFunc: func(ctx context.Context, id string) (*domain.Movie, error) {
			if id == "mv-1" {
				return &domain.Movie{ID: "mv-1", Title: "Arrival", DurationMins: 116}, nil
			}
			return nil, domain.ErrRecordNotFound
		},
	}
}

func TestCreateShowtime(t *testing.T) {
	startTime := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

	t.Run("creates a showtime with explicit dimensions", func(t *testing.T) {
		var created *domain.Showtime
		repo := &mocks.ShowtimeRepository{
			CreateFunc: func(ctx context.Context, showtime *domain.Showtime) error {
				showtime.ID = "st-1"
				created = showtime
				return nil
			},
		}
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(repo))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{
			MovieID:    "mv-1",
			StartTime:  startTime,
			Auditorium: "Screen 1",
			Rows:       10,
			Cols:       20,
			Price:      ptr(decimal.NewFromFloat(15.5)),
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "st-1", decodeResponse[IDResponse](t, rec).ID)

		require.NotNil(t, created)
		assert.Equal(t, 10, created.Rows)
		assert.Equal(t, 20, created.Cols)
		assert.True(t, created.Price.Equal(decimal.NewFromFloat(15.5)))
	})

	t.Run("applies grid and price defaults", func(t *testing.T) {
		var created *domain.Showtime
		repo := &mocks.ShowtimeRepository{
			CreateFunc: func(ctx context.Context, showtime *domain.Showtime) error {
				showtime.ID = "st-1"
				created = showtime
				return nil
			},
		}
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(repo))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{
			MovieID:    "mv-1",
			StartTime:  startTime,
			Auditorium: "Screen 1",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		require.NotNil(t, created)
		assert.Equal(t, DefaultRows, created.Rows)
		assert.Equal(t, DefaultCols, created.Cols)
		assert.True(t, created.Price.Equal(decimal.NewFromInt(12)))
	})

	t.Run("unknown movie fails validation", func(t *testing.T) {
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(&mocks.ShowtimeRepository{}))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{
			MovieID:    "mv-missing",
			StartTime:  startTime,
			Auditorium: "Screen 1",
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decodeResponse[ValidationErrorResponse](t, rec)
		require.Len(t, resp.ValidationErrors, 1)
		assert.Equal(t, "movie_id", resp.ValidationErrors[0].Field)
	})

	t.Run("negative price fails validation", func(t *testing.T) {
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(&mocks.ShowtimeRepository{}))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{
			MovieID:    "mv-1",
			StartTime:  startTime,
			Auditorium: "Screen 1",
			Price:      ptr(decimal.NewFromInt(-1)),
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decodeResponse[ValidationErrorResponse](t, rec)
		require.Len(t, resp.ValidationErrors, 1)
		assert.Equal(t, "price", resp.ValidationErrors[0].Field)
	})

	t.Run("oversized grid fails validation", func(t *testing.T) {
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(&mocks.ShowtimeRepository{}))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{
			MovieID:    "mv-1",
			StartTime:  startTime,
			Auditorium: "Screen 1",
			Rows:       27,
			Cols:       31,
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decodeResponse[ValidationErrorResponse](t, rec)
		assert.Len(t, resp.ValidationErrors, 2)
	})

	t.Run("missing required fields fail validation", func(t *testing.T) {
		app := newTestApplication(t, withMovieRepo(knownMovieRepo()), withShowtimeRepo(&mocks.ShowtimeRepository{}))

		rec := executeRequest(t, app, http.MethodPost, "/api/showtimes", CreateShowtimeRequest{})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestListShowtimes(t *testing.T) {
	t.Run("returns showtimes and passes the movie filter through", func(t *testing.T) {
		var gotFilters domain.ShowtimeFilters
		repo := &mocks.ShowtimeRepository{
			GetAllFunc: func(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
				gotFilters = filters
				return []*domain.Showtime{
					{ID: "st-1", MovieID: "mv-1", Auditorium: "Screen 1", Rows: 8, Cols: 12, Price: decimal.NewFromInt(12)},
				}, nil
			},
		}
		app := newTestApplication(t, withShowtimeRepo(repo))

		rec := executeRequest(t, app, http.MethodGet, "/api/showtimes?movie_id=mv-1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "mv-1", gotFilters.MovieID)

		got := decodeResponse[[]ShowtimeResponse](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, "st-1", got[0].ID)
	})

	t.Run("storage failure returns 503", func(t *testing.T) {
		repo := &mocks.ShowtimeRepository{
			GetAllFunc: func(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
				return nil, errors.New("connection reset")
			},
		}
		app := newTestApplication(t, withShowtimeRepo(repo))

		rec := executeRequest(t, app, http.MethodGet, "/api/showtimes", nil)

		requireErrorKind(t, rec, http.StatusServiceUnavailable, ErrKindStorageFailure)
	})
}

func TestGetShowtimeSeats(t *testing.T) {
	smallShowtime := &domain.Showtime{
		ID: "st-1", MovieID: "mv-1", Auditorium: "Screen 1",
		Rows: 2, Cols: 2, Price: decimal.NewFromInt(12),
	}

	showtimeRepo := func(showtime *domain.Showtime) *mocks.ShowtimeRepository {
		return &mocks.ShowtimeRepository{
			GetByIdFunc: func(ctx context.Context, id string) (*domain.Showtime, error) {
				if showtime != nil && id == showtime.ID {
					return showtime, nil
				}
				return nil, domain.ErrRecordNotFound
			},
		}
	}

	t.Run("marks booked seats unavailable", func(t *testing.T) {
		bookings := &mocks.BookingRepository{
			GetConfirmedSeatsByShowtimeFunc: func(ctx context.Context, showtimeID string) ([]string, error) {
				return []string{"A2", "B1"}, nil
			},
		}
		app := newTestApplication(t, withShowtimeRepo(showtimeRepo(smallShowtime)), withBookingRepo(bookings))

		rec := executeRequest(t, app, http.MethodGet, "/api/showtimes/st-1/seats", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		got := decodeResponse[SeatMapResponse](t, rec)
		assert.Equal(t, "st-1", got.ShowtimeID)
		assert.Equal(t, 2, got.Rows)
		assert.Equal(t, 2, got.Cols)

		require.Len(t, got.SeatRows, 2)
		assert.Equal(t, "A", got.SeatRows[0].Row)
		assert.Equal(t, []SeatStatus{{Code: "A1", Available: true}, {Code: "A2", Available: false}}, got.SeatRows[0].Seats)
		assert.Equal(t, "B", got.SeatRows[1].Row)
		assert.Equal(t, []SeatStatus{{Code: "B1", Available: false}, {Code: "B2", Available: true}}, got.SeatRows[1].Seats)
	})

	t.Run("unknown showtime returns 404", func(t *testing.T) {
		bookings := &mocks.BookingRepository{
			GetConfirmedSeatsByShowtimeFunc: func(ctx context.Context, showtimeID string) ([]string, error) {
				return nil, nil
			},
		}
		app := newTestApplication(t, withShowtimeRepo(showtimeRepo(nil)), withBookingRepo(bookings))

		rec := executeRequest(t, app, http.MethodGet, "/api/showtimes/st-missing/seats", nil)

		requireErrorKind(t, rec, http.StatusNotFound, ErrKindShowtimeNotFound)
	})

	t.Run("ledger rebuild failure returns 503", func(t *testing.T) {
		bookings := &mocks.BookingRepository{
			GetConfirmedSeatsByShowtimeFunc: func(ctx context.Context, showtimeID string) ([]string, error) {
				return nil, errors.New("connection reset")
			},
		}
		app := newTestApplication(t, withShowtimeRepo(showtimeRepo(smallShowtime)), withBookingRepo(bookings))

		rec := executeRequest(t, app, http.MethodGet, "/api/showtimes/st-1/seats", nil)

		requireErrorKind(t, rec, http.StatusServiceUnavailable, ErrKindStorageFailure)
	})
}
