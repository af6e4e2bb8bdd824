package domain

import (
	"context"
)

type Movie struct {
	ID           string
	Title        string
	Description  string
	DurationMins int
	Genre        string
	Rating       string
	PosterURL    string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context) ([]*Movie, error)
	GetById(ctx context.Context, id string) (*Movie, error)
}
