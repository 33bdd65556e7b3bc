package shift

import (
	"context"
	"math/rand/v2"

	"github.com/tablerota/rota-backend-go/internal/domain/shift"
)

const (
	// 16-digit decimal range, no leading zero.
	idMin  = int64(1_000_000_000_000_000)
	idSpan = int64(9_000_000_000_000_000)

	maxAllocateAttempts = 10
)

// IDAllocator draws 16-digit identifiers unique across the shifts and
// shift_requests tables. The probe is advisory; the UNIQUE constraint on
// the tables is the authoritative guard and callers retry once on a
// constraint violation.
type IDAllocator struct {
	shiftRepo   shift.Repository
	requestRepo shift.RequestRepository
	randInt     func(n int64) int64
}

func NewIDAllocator(shiftRepo shift.Repository, requestRepo shift.RequestRepository) *IDAllocator {
	return &IDAllocator{
		shiftRepo:   shiftRepo,
		requestRepo: requestRepo,
		randInt:     rand.Int64N,
	}
}

// Allocate returns an id not present in either table at probe time. It
// gives up with shift.ErrIDAllocation after maxAllocateAttempts collisions.
func (a *IDAllocator) Allocate(ctx context.Context) (int64, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		id := idMin + a.randInt(idSpan)

		taken, err := a.shiftRepo.IDExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if taken {
			continue
		}

		taken, err = a.requestRepo.IDExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if taken {
			continue
		}

		return id, nil
	}
	return 0, shift.ErrIDAllocation
}
