// Package ledger holds the authoritative in-memory view of which seats are
// taken per showtime. It is the single enforcement point for the
// no-double-booking invariant: the check-and-mark step of Reserve is
// indivisible with respect to concurrent reservations on the same showtime.
package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/filmgate/cinema-booking-api/internal/domain"
	"github.com/google/uuid"
)

// Reservation is a successful atomic claim on a set of seats. The token
// identifies the claim in logs; the showtime and seats are what Release needs
// to undo it.
type Reservation struct {
	Token      string
	ShowtimeID string
	Seats      []string
}

type Ledger struct {
	bookings domain.BookingRepository

	mu     sync.Mutex
	shards map[string]*shard
}

// shard tracks one showtime. Each shard has its own mutex so reservations for
// different showtimes never contend.
type shard struct {
	mu       sync.Mutex
	hydrated bool
	taken    map[string]bool
}

func New(bookings domain.BookingRepository) *Ledger {
	return &Ledger{
		bookings: bookings,
		shards:   make(map[string]*shard),
	}
}

// Reserve atomically checks that none of the requested seats are taken for the
// showtime and marks all of them taken. On overlap it returns a
// *domain.SeatConflictError naming every conflicting seat and changes nothing.
func (l *Ledger) Reserve(ctx context.Context, showtimeID string, seats []string) (Reservation, error) {
	s := l.shard(showtimeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := l.hydrate(ctx, s, showtimeID); err != nil {
		return Reservation{}, &domain.StorageError{Op: "ledger rebuild", Err: err}
	}

	var conflicts []string
	for _, seat := range seats {
		if s.taken[seat] {
			conflicts = append(conflicts, seat)
		}
	}

	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return Reservation{}, &domain.SeatConflictError{Seats: conflicts}
	}

	for _, seat := range seats {
		s.taken[seat] = true
	}

	reservation := Reservation{
		Token:      uuid.NewString(),
		ShowtimeID: showtimeID,
		Seats:      append([]string(nil), seats...),
	}

	return reservation, nil
}

// Release frees the given seats. It is idempotent: releasing seats that are
// already free, or touching a showtime the ledger has never seen, is a no-op.
func (l *Ledger) Release(showtimeID string, seats []string) {
	l.mu.Lock()
	s, ok := l.shards[showtimeID]
	l.mu.Unlock()

	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range seats {
		delete(s.taken, seat)
	}
}

// CurrentlyTaken returns the sorted seat codes belonging to confirmed bookings
// of the showtime.
func (l *Ledger) CurrentlyTaken(ctx context.Context, showtimeID string) ([]string, error) {
	s := l.shard(showtimeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := l.hydrate(ctx, s, showtimeID); err != nil {
		return nil, &domain.StorageError{Op: "ledger rebuild", Err: err}
	}

	taken := make([]string, 0, len(s.taken))
	for seat := range s.taken {
		taken = append(taken, seat)
	}
	sort.Strings(taken)

	return taken, nil
}

func (l *Ledger) shard(showtimeID string) *shard {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.shards[showtimeID]
	if !ok {
		s = &shard{taken: make(map[string]bool)}
		l.shards[showtimeID] = s
	}

	return s
}

// hydrate rebuilds the taken set from persisted confirmed bookings the first
// time a showtime is touched, so the ledger never trusts cached state across a
// restart. The caller must hold the shard lock. A failed rebuild leaves the
// shard unhydrated so the next attempt retries.
func (l *Ledger) hydrate(ctx context.Context, s *shard, showtimeID string) error {
	if s.hydrated {
		return nil
	}

	seats, err := l.bookings.GetConfirmedSeatsByShowtime(ctx, showtimeID)
	if err != nil {
		return err
	}

	for _, seat := range seats {
		s.taken[seat] = true
	}
	s.hydrated = true

	return nil
}
