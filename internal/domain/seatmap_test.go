package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmgate/cinema-booking-api/internal/domain"
)

func TestSeatCodes(t *testing.T) {
	t.Run("returns the full grid row by row", func(t *testing.T) {
		codes := domain.SeatCodes(2, 2)

		assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, codes)
	})

	t.Run("covers the largest supported grid", func(t *testing.T) {
		codes := domain.SeatCodes(domain.MaxRows, domain.MaxCols)

		require.Len(t, codes, domain.MaxRows*domain.MaxCols)
		assert.Equal(t, "A1", codes[0])
		assert.Equal(t, "Z30", codes[len(codes)-1])
	})

	t.Run("cardinality is rows times cols", func(t *testing.T) {
		assert.Len(t, domain.SeatCodes(8, 12), 96)
		assert.Len(t, domain.SeatCodes(1, 1), 1)
	})

	t.Run("rejects out-of-range dimensions", func(t *testing.T) {
		assert.Nil(t, domain.SeatCodes(0, 12))
		assert.Nil(t, domain.SeatCodes(8, 0))
		assert.Nil(t, domain.SeatCodes(-1, 12))
		assert.Nil(t, domain.SeatCodes(domain.MaxRows+1, 12))
		assert.Nil(t, domain.SeatCodes(8, domain.MaxCols+1))
	})
}

func TestValidateSeats(t *testing.T) {
	testCases := []struct {
		name         string
		seats        []string
		rows         int
		cols         int
		wantErr      bool
		wantReason   string
		wantBadSeats []string
	}{
		{
			name:  "valid seats pass",
			seats: []string{"A1", "B12", "H9"},
			rows:  8,
			cols:  12,
		},
		{
			name:  "full corner seats pass",
			seats: []string{"A1", "A12", "H1", "H12"},
			rows:  8,
			cols:  12,
		},
		{
			name:       "empty list fails",
			seats:      []string{},
			rows:       8,
			cols:       12,
			wantErr:    true,
			wantReason: "seat list must not be empty",
		},
		{
			name:       "nil list fails",
			seats:      nil,
			rows:       8,
			cols:       12,
			wantErr:    true,
			wantReason: "seat list must not be empty",
		},
		{
			name:         "duplicates fail",
			seats:        []string{"A1", "A2", "A1"},
			rows:         8,
			cols:         12,
			wantErr:      true,
			wantReason:   "duplicate seat(s) in request",
			wantBadSeats: []string{"A1"},
		},
		{
			name:         "row outside grid fails",
			seats:        []string{"I1"},
			rows:         8,
			cols:         12,
			wantErr:      true,
			wantReason:   "seat(s) outside the seating grid",
			wantBadSeats: []string{"I1"},
		},
		{
			name:         "column outside grid fails",
			seats:        []string{"A13"},
			rows:         8,
			cols:         12,
			wantErr:      true,
			wantReason:   "seat(s) outside the seating grid",
			wantBadSeats: []string{"A13"},
		},
		{
			name:         "malformed codes fail",
			seats:        []string{"1A", "a1", "A0"},
			rows:         8,
			cols:         12,
			wantErr:      true,
			wantReason:   "seat(s) outside the seating grid",
			wantBadSeats: []string{"1A", "a1", "A0"},
		},
		{
			name:         "mixed valid and invalid reports only the invalid",
			seats:        []string{"A1", "Z9", "B2"},
			rows:         8,
			cols:         12,
			wantErr:      true,
			wantReason:   "seat(s) outside the seating grid",
			wantBadSeats: []string{"Z9"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateSeats(tc.seats, tc.rows, tc.cols)

			if !tc.wantErr {
				require.NoError(t, err)
				return
			}

			var invalidSeatErr *domain.InvalidSeatError
			require.ErrorAs(t, err, &invalidSeatErr)
			assert.Equal(t, tc.wantReason, invalidSeatErr.Reason)
			assert.Equal(t, tc.wantBadSeats, invalidSeatErr.Seats)
		})
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &domain.StorageError{Op: "booking persist", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "booking persist")
}
