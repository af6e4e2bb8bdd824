// Package mocks provides hand-written test doubles for the repository
// interfaces. Each mock delegates to an optional func field, so a test only
// stubs the calls it expects.
package mocks

import (
	"context"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

type MovieRepository struct {
	CreateFunc  func(ctx context.Context, movie *domain.Movie) error
	GetAllFunc  func(ctx context.Context) ([]*domain.Movie, error)
	GetByIdFunc func(ctx context.Context, id string) (*domain.Movie, error)
}

func (m *MovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MovieRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx)
}

func (m *MovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

type ShowtimeRepository struct {
	CreateFunc  func(ctx context.Context, showtime *domain.Showtime) error
	GetAllFunc  func(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error)
	GetByIdFunc func(ctx context.Context, id string) (*domain.Showtime, error)
}

func (m *ShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	return m.CreateFunc(ctx, showtime)
}

func (m *ShowtimeRepository) GetAll(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.Showtime, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *ShowtimeRepository) GetById(ctx context.Context, id string) (*domain.Showtime, error) {
	return m.GetByIdFunc(ctx, id)
}

type BookingRepository struct {
	CreateFunc                      func(ctx context.Context, booking *domain.Booking) error
	GetAllFunc                      func(ctx context.Context, filters domain.BookingFilters) ([]*domain.Booking, error)
	GetByIdFunc                     func(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatusFunc                func(ctx context.Context, id string, status domain.BookingStatus) error
	GetConfirmedSeatsByShowtimeFunc func(ctx context.Context, showtimeID string) ([]string, error)
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *BookingRepository) GetAll(ctx context.Context, filters domain.BookingFilters) ([]*domain.Booking, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *BookingRepository) GetById(ctx context.Context, id string) (*domain.Booking, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *BookingRepository) GetConfirmedSeatsByShowtime(ctx context.Context, showtimeID string) ([]string, error) {
	return m.GetConfirmedSeatsByShowtimeFunc(ctx, showtimeID)
}
