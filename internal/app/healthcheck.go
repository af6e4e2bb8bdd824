package app

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type LivenessResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment"`
}

type DiagnosticsResponse struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Cache       string   `json:"cache"`
	Collections []string `json:"collections"`
}

func (app *Application) GetLiveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:      "UP",
		Message:     "Cinema Booking API is running",
		Version:     version,
		Environment: app.config.Env,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

// GetDiagnostics reports connectivity to the backing stores. It never fails
// the request: degraded dependencies are reported in the body.
func (app *Application) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	resp := DiagnosticsResponse{
		Backend:     "running",
		Database:    "not connected",
		Cache:       "disabled",
		Collections: []string{},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if app.db != nil {
		err := app.db.Client().Ping(ctx, readpref.Primary())
		if err != nil {
			resp.Database = "unreachable"
		} else {
			resp.Database = "connected"

			collections, err := app.db.ListCollectionNames(ctx, bson.M{})
			if err == nil {
				if len(collections) > 10 {
					collections = collections[:10]
				}
				resp.Collections = collections
			}
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			resp.Cache = "unreachable"
		} else {
			resp.Cache = "connected"
		}
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
