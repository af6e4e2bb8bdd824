package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filmgate/cinema-booking-api/internal/booking"
	"github.com/filmgate/cinema-booking-api/internal/domain"
	"github.com/filmgate/cinema-booking-api/internal/ledger"
	appvalidator "github.com/filmgate/cinema-booking-api/internal/validator"
)

type testAppOption func(*Application)

func withMovieRepo(repo domain.MovieRepository) testAppOption {
	return func(app *Application) { app.movieRepo = repo }
}

func withShowtimeRepo(repo domain.ShowtimeRepository) testAppOption {
	return func(app *Application) { app.showtimeRepo = repo }
}

func withBookingRepo(repo domain.BookingRepository) testAppOption {
	return func(app *Application) { app.bookingRepo = repo }
}

// newTestApplication wires an Application over the given repositories with a
// real ledger and booking service, so handler tests exercise the same
// orchestration as production.
func newTestApplication(t *testing.T, opts ...testAppOption) *Application {
	t.Helper()

	app := &Application{
		config:    Config{Env: "test"},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: appvalidator.NewValidator(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.bookingRepo != nil {
		app.ledger = ledger.New(app.bookingRepo)
		app.booking = booking.NewService(app.showtimeRepo, app.bookingRepo, app.ledger, app.logger)
	}

	return app
}

func executeRequest(t *testing.T, app *Application, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()

	app.Routes().ServeHTTP(rec, req)

	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	err := json.NewDecoder(rec.Body).Decode(&v)
	require.NoError(t, err)

	return v
}

func requireErrorKind(t *testing.T, rec *httptest.ResponseRecorder, status int, kind string) ErrorResponse {
	t.Helper()

	require.Equal(t, status, rec.Code)

	resp := decodeResponse[ErrorResponse](t, rec)
	require.Equal(t, kind, resp.Kind)

	return resp
}

func ptr[T any](v T) *T {
	return &v
}
