package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawcare/internal/domain"
)

func createOpenPosting(t *testing.T, repo *BookingRepository) string {
	t.Helper()
	b := &domain.Booking{
		OwnerID:       "owner-1",
		PetID:         "pet-1",
		StartTime:     time.Now().Add(24 * time.Hour),
		DurationHours: 2,
		TotalCost:     40,
		Status:        domain.BookingPending,
		WalkCode:      "123456",
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b.ID
}

func TestClaimSitter_ConcurrentClaimersOneWinner(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	id := createOpenPosting(t, repo)

	const claimers = 8

	start := make(chan struct{})
	wins := make(chan string, claimers)
	errs := make(chan error, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		sitterID := fmt.Sprintf("sitter-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := repo.ClaimSitter(context.Background(), id, sitterID)
			if err != nil {
				errs <- err
				return
			}
			if ok {
				wins <- sitterID
			}
		}()
	}
	close(start)
	wg.Wait()
	close(wins)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1, "exactly one claim must land")

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, b.SitterID)
	assert.Equal(t, winners[0], *b.SitterID)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestApproveUnclaimed_ClaimedPostingRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	id := createOpenPosting(t, repo)

	ok, err := repo.ClaimSitter(context.Background(), id, "sitter-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.ApproveUnclaimed(context.Background(), id, "sitter-2")
	require.NoError(t, err)
	assert.False(t, ok)

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "sitter-1", *b.SitterID)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestUpdateStatusIf_StaleFromLosesQuietly(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	id := createOpenPosting(t, repo)

	ok, err := repo.UpdateStatusIf(context.Background(), id, domain.BookingPending, domain.BookingCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.UpdateStatusIf(context.Background(), id, domain.BookingPending, domain.BookingUpcoming)
	require.NoError(t, err)
	assert.False(t, ok)

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}
