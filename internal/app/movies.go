package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

const (
	movieCacheKey = "catalog:movies"
	movieCacheTTL = time.Minute
)

type CreateMovieRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
	DurationMins int    `json:"duration_mins" validate:"required,gt=0"`
	Genre        string `json:"genre" validate:"omitempty,max=50"`
	Rating       string `json:"rating" validate:"omitempty,max=10"`
	PosterURL    string `json:"poster_url" validate:"omitempty,url"`
}

type MovieResponse struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	DurationMins int    `json:"duration_mins"`
	Genre        string `json:"genre,omitempty"`
	Rating       string `json:"rating,omitempty"`
	PosterURL    string `json:"poster_url,omitempty"`
}

// IDResponse is the create-endpoint envelope, shaped like the document store's
// own id field.
type IDResponse struct {
	ID string `json:"_id"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	if cached, ok := app.cachedMovieList(r); ok {
		err := app.writeJSON(w, http.StatusOK, cached, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	resp := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieResponse(movie)
	}

	if app.redis != nil {
		js, err := json.Marshal(resp)
		if err == nil {
			err = app.redis.Set(r.Context(), movieCacheKey, js, movieCacheTTL).Err()
		}
		if err != nil {
			logger.Warn("failed to cache movie list", "error", err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// cachedMovieList serves the listing from Redis when possible. Cache problems
// only ever degrade to the database path.
func (app *Application) cachedMovieList(r *http.Request) ([]MovieResponse, bool) {
	if app.redis == nil {
		return nil, false
	}

	logger := app.contextGetLogger(r)

	cached, err := app.redis.Get(r.Context(), movieCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("failed to read movie list cache", "error", err)
		}
		return nil, false
	}

	var resp []MovieResponse
	if err := json.Unmarshal(cached, &resp); err != nil {
		logger.Warn("discarding malformed movie list cache entry", "error", err)
		return nil, false
	}

	return resp, true
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input CreateMovieRequest

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

	movie := &domain.Movie{
		Title:        input.Title,
		Description:  input.Description,
		DurationMins: input.DurationMins,
		Genre:        input.Genre,
		Rating:       input.Rating,
		PosterURL:    input.PosterURL,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.storageFailureResponse(w, r, err)
		return
	}

	if app.redis != nil {
		err = app.redis.Del(r.Context(), movieCacheKey).Err()
		if err != nil {
			app.contextGetLogger(r).Warn("failed to invalidate movie list cache", "error", err)
		}
	}

	err = app.writeJSON(w, http.StatusCreated, IDResponse{ID: movie.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:           movie.ID,
		Title:        movie.Title,
		Description:  movie.Description,
		DurationMins: movie.DurationMins,
		Genre:        movie.Genre,
		Rating:       movie.Rating,
		PosterURL:    movie.PosterURL,
	}
}
