package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/filmgate/cinema-booking-api/internal/app"
)

const (
	dbName         = "cinema_test"
	dbImageName    = "mongo:7"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app            *app.Application
	dbContainer    *tcmongo.MongoDBContainer
	cacheContainer *tcredis.RedisContainer
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	dbContainer, err := tcmongo.Run(ctx, dbImageName)
	if err != nil {
		log.Printf("failed to start database container: %s", err)
		return
	}
	s.dbContainer = dbContainer

	cacheContainer, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		log.Printf("failed to start cache container: %s", err)
		return
	}
	s.cacheContainer = cacheContainer

	dbURI, err := dbContainer.ConnectionString(ctx)
	if err != nil {
		log.Printf("failed to get database connection string: %s", err)
		return
	}

	cacheURL, err := cacheContainer.ConnectionString(ctx)
	if err != nil {
		log.Printf("failed to get cache connection string: %s", err)
		return
	}

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			URI:            dbURI,
			Name:           dbName,
			MaxPoolSize:    10,
			ConnectTimeout: 10 * time.Second,
		},
		Redis: app.RedisConfig{
			URL:          cacheURL,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = application
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

// do runs one request against the full router, the same handler chain the
// real server mounts.
func (s *BaseSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader *bytes.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(js)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.app.Routes().ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}
