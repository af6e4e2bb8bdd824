package domain

import "fmt"

// SeatCodes returns every valid seat code of a rows×cols grid, row by row.
// Rows map to letters starting at A, columns to numbers starting at 1, so a
// 2×2 grid yields A1, A2, B1, B2.
func SeatCodes(rows, cols int) []string {
	if rows < 1 || cols < 1 || rows > MaxRows || cols > MaxCols {
		return nil
	}

	codes := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 1; c <= cols; c++ {
			codes = append(codes, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}

	return codes
}

// ValidateSeats checks a requested seat list against a rows×cols grid. It
// fails with *InvalidSeatError when the list is empty, contains duplicates,
// or contains codes outside the grid. It performs no I/O.
func ValidateSeats(seats []string, rows, cols int) error {
	if len(seats) == 0 {
		return &InvalidSeatError{Reason: "seat list must not be empty"}
	}

	valid := make(map[string]bool, rows*cols)
	for _, code := range SeatCodes(rows, cols) {
		valid[code] = true
	}

	seen := make(map[string]bool, len(seats))
	var duplicates, unknown []string

	for _, seat := range seats {
		if seen[seat] {
			duplicates = append(duplicates, seat)
			continue
		}
		seen[seat] = true

		if !valid[seat] {
			unknown = append(unknown, seat)
		}
	}

	if len(duplicates) > 0 {
		return &InvalidSeatError{Seats: duplicates, Reason: "duplicate seat(s) in request"}
	}
	if len(unknown) > 0 {
		return &InvalidSeatError{Seats: unknown, Reason: "seat(s) outside the seating grid"}
	}

	return nil
}
