package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	appvalidator "github.com/filmgate/cinema-booking-api/internal/validator"
)

// Machine-readable error kinds. Clients branch on these, not on messages.
const (
	ErrKindValidation       = "ValidationError"
	ErrKindBadRequest       = "BadRequest"
	ErrKindNotFound         = "NotFound"
	ErrKindMovieNotFound    = "MovieNotFound"
	ErrKindShowtimeNotFound = "ShowtimeNotFound"
	ErrKindBookingNotFound  = "BookingNotFound"
	ErrKindInvalidSeat      = "InvalidSeat"
	ErrKindSeatConflict     = "SeatConflict"
	ErrKindStorageFailure   = "StorageFailure"
	ErrKindInternal         = "InternalError"
)

const (
	ErrInternalServer = "The server encountered a problem and could not process your request"
	ErrStorageFailure = "The data store is temporarily unavailable, please retry"
)

type ErrorResponse struct {
	Kind             string    `json:"kind"`
	Message          string    `json:"message"`
	ConflictingSeats []string  `json:"conflicting_seats,omitempty"`
	RequestId        string    `json:"request_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

type ValidationIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Kind             string            `json:"kind"`
	Message          string            `json:"message"`
	ValidationErrors []ValidationIssue `json:"validation_errors"`
	RequestId        string            `json:"request_id,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted
// error messages to the client with a given status code and error kind.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	resp := ErrorResponse{
		Kind:      kind,
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrKindInternal, ErrInternalServer)
}

func (app *Application) storageFailureResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusServiceUnavailable, ErrKindStorageFailure, ErrStorageFailure)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrKindNotFound, "The requested resource not found")
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, ErrKindBadRequest, err.Error())
}

func (app *Application) seatConflictResponse(w http.ResponseWriter, r *http.Request, conflictingSeats []string) {
	resp := ErrorResponse{
		Kind:             ErrKindSeatConflict,
		Message:          "one or more of the requested seats are already booked",
		ConflictingSeats: conflictingSeats,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now().UTC(),
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failedValidationResponse translates go-playground/validator errors into a
// 422 response enumerating each offending field.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	issues := make([]ValidationIssue, len(validationErrors))
	for i, fieldError := range validationErrors {
		issues[i] = ValidationIssue{
			Field: fieldError.Field(),
			Issue: appvalidator.ValidationMessage(fieldError),
		}
	}

	app.validationIssuesResponse(w, r, issues)
}

func (app *Application) validationIssuesResponse(w http.ResponseWriter, r *http.Request, issues []ValidationIssue) {
	resp := ValidationErrorResponse{
		Kind:             ErrKindValidation,
		Message:          "the request contains invalid fields",
		ValidationErrors: issues,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now().UTC(),
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
