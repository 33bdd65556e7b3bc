package shift

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
)

func TestIDAllocatorRange(t *testing.T) {
	ctx := context.Background()
	a := NewIDAllocator(newFakeShiftRepo(), newFakeRequestRepo())

	for i := 0; i < 100; i++ {
		id, err := a.Allocate(ctx)
		require.NoError(t, err)
		assert.Len(t, strconv.FormatInt(id, 10), 16, "id %d is not 16 digits", id)
	}
}

func TestIDAllocatorSkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	shiftRepo := newFakeShiftRepo()
	requestRepo := newFakeRequestRepo()

	taken := idMin
	alsoTaken := idMin + 1
	free := idMin + 2
	shiftRepo.shifts[taken] = shift.Shift{ID: taken}
	requestRepo.requests[alsoTaken] = shift.Request{ID: alsoTaken}

	a := NewIDAllocator(shiftRepo, requestRepo)
	draws := []int64{0, 1, 2} // offsets into the id range
	a.randInt = func(n int64) int64 {
		d := draws[0]
		draws = draws[1:]
		return d
	}

	id, err := a.Allocate(ctx)
	require.NoError(t, err)
	assert.Equal(t, free, id)
}

func TestIDAllocatorExhaustion(t *testing.T) {
	ctx := context.Background()
	shiftRepo := newFakeShiftRepo()
	shiftRepo.shifts[idMin] = shift.Shift{ID: idMin}

	a := NewIDAllocator(shiftRepo, newFakeRequestRepo())
	// every probe lands on the taken id
	a.randInt = func(n int64) int64 { return 0 }

	_, err := a.Allocate(ctx)
	assert.ErrorIs(t, err, shift.ErrIDAllocation)
}
