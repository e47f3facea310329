package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

const testOwner = models.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

func TestLedger_HoldAndReleaseEscrow(t *testing.T) {
	l := NewLedger(testOwner, models.DefaultPlatformFeeBps)

	err := l.Update(func(st *State) error {
		st.HoldEscrow(1, 4_000)
		st.HoldEscrow(2, 6_000)
		return st.CheckEscrowIntegrity()
	})
	require.NoError(t, err)

	err = l.Update(func(st *State) error {
		st.ReleaseEscrow(1, 4_000)
		return st.CheckEscrowIntegrity()
	})
	require.NoError(t, err)

	l.View(func(st *State) {
		assert.Equal(t, uint64(6_000), st.EscrowTotal)
		assert.Equal(t, uint64(6_000), st.ContractBalance)
		assert.Zero(t, st.EscrowBalances[1])
	})
}

func TestLedger_CheckEscrowIntegrity_Mismatch(t *testing.T) {
	l := NewLedger(testOwner, models.DefaultPlatformFeeBps)

	err := l.Update(func(st *State) error {
		st.HoldEscrow(1, 1_000)
		// Ручная порча леджера должна ловиться перед любым списанием
		st.EscrowTotal++
		return st.CheckEscrowIntegrity()
	})
	assert.ErrorIs(t, err, apperror.ErrEscrowMismatch)
}

func TestLedger_ConcurrentUpdates(t *testing.T) {
	l := NewLedger(testOwner, models.DefaultPlatformFeeBps)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Update(func(st *State) error {
				st.ContractBalance += 10
				return nil
			})
		}()
	}
	wg.Wait()

	l.View(func(st *State) {
		assert.Equal(t, uint64(1_000), st.ContractBalance)
	})
}

func TestLedger_Counters_StartAtOne(t *testing.T) {
	l := NewLedger(testOwner, 250)
	l.View(func(st *State) {
		assert.Equal(t, uint64(1), st.NextJobID)
		assert.Equal(t, uint64(1), st.NextProposalID)
		assert.Equal(t, uint64(1), st.NextMilestoneID)
		assert.Equal(t, uint64(1), st.NextDisputeID)
		assert.Equal(t, testOwner, st.Platform.Owner)
		assert.False(t, st.Platform.Paused)
	})
}
