package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxRows is bounded by the single-letter row naming scheme (A..Z).
	MaxRows = 26
	MaxCols = 30
)

type Showtime struct {
	ID         string
	MovieID    string
	StartTime  time.Time
	Auditorium string
	Rows       int
	Cols       int
	Price      decimal.Decimal
}

type ShowtimeFilters struct {
	MovieID string
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetAll(ctx context.Context, filters ShowtimeFilters) ([]*Showtime, error)
	GetById(ctx context.Context, id string) (*Showtime, error)
}
