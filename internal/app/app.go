package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/filmgate/cinema-booking-api/internal/booking"
	"github.com/filmgate/cinema-booking-api/internal/domain"
	"github.com/filmgate/cinema-booking-api/internal/ledger"
	"github.com/filmgate/cinema-booking-api/internal/repository"
	appvalidator "github.com/filmgate/cinema-booking-api/internal/validator"
	"github.com/filmgate/cinema-booking-api/internal/vcs"
)

const serviceName = "cinema-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *mongo.Database
	redis     redis.UniversalClient
	validator *validator.Validate

	movieRepo    domain.MovieRepository
	showtimeRepo domain.ShowtimeRepository
	bookingRepo  domain.BookingRepository

	ledger  *ledger.Ledger
	booking *booking.Service

	shutdownTelemetry func(context.Context)
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	URI            string
	Name           string
	MaxPoolSize    int
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 8000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.URI, "db-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	flag.StringVar(&cfg.DB.Name, "db-name", "cinema", "MongoDB database name")
	flag.IntVar(&cfg.DB.MaxPoolSize, "db-max-pool-size", 25, "MongoDB max pool size")
	flag.DurationVar(&cfg.DB.ConnectTimeout, "db-connect-timeout", 10*time.Second, "MongoDB connect timeout")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL for catalog caching (empty disables the cache)")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL (empty disables telemetry)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := NewApplication(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.serve()
}

func NewApplication(cfg Config) (*Application, error) {
	app := &Application{
		config:    cfg,
		logger:    slog.New(slog.NewTextHandler(os.Stdout, nil)),
		validator: appvalidator.NewValidator(),
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return nil, err
	}
	app.shutdownTelemetry = shutdownTelemetry

	db, err := newMongoDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db

	if cfg.Redis.URL != "" {
		redisClient, err := newRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		app.redis = redisClient
	}

	app.movieRepo = repository.NewMongoMovieRepository(db)
	app.showtimeRepo = repository.NewMongoShowtimeRepository(db)
	app.bookingRepo = repository.NewMongoBookingRepository(db)

	app.ledger = ledger.New(app.bookingRepo)
	app.booking = booking.NewService(app.showtimeRepo, app.bookingRepo, app.ledger, app.logger)

	return app, nil
}

// Close releases the application's external connections. Safe to call on a
// partially constructed Application.
func (app *Application) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.db != nil {
		if err := app.db.Client().Disconnect(ctx); err != nil {
			app.logger.Error("failed to disconnect from MongoDB", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close Redis client", "error", err)
		}
	}

	if app.shutdownTelemetry != nil {
		app.shutdownTelemetry(ctx)
	}
}

func newMongoDatabase(cfg Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.DB.URI).
		SetMaxPoolSize(uint64(cfg.DB.MaxPoolSize)).
		SetMonitor(otelmongo.NewMonitor())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer disconnectCancel()

		_ = client.Disconnect(disconnectCtx)

		return nil, err
	}

	return client.Database(cfg.DB.Name), nil
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	opts.MaxActiveConns = cfg.Redis.MaxOpenConns
	opts.MaxIdleConns = cfg.Redis.MaxIdleConns
	opts.ConnMaxIdleTime = cfg.Redis.MaxIdleTime

	rdb := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)

	r.Get("/", app.GetLiveness)
	r.Get("/test", app.GetDiagnostics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/movies", app.ListMovies)
		r.Post("/movies", app.CreateMovie)

		r.Get("/showtimes", app.ListShowtimes)
		r.Post("/showtimes", app.CreateShowtime)
		r.Get("/showtimes/{showtimeID}/seats", app.GetShowtimeSeats)

		r.Get("/bookings", app.ListBookings)
		r.Post("/bookings", app.CreateBooking)
		r.Delete("/bookings/{bookingID}", app.CancelBooking)
	})

	return r
}
