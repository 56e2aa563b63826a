// internal/game/land_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitloop/internal/models"
)

func TestAcquireAndTollDoubling(t *testing.T) {
	l := NewLandLedger(2)
	owner := uuid.New()

	require.NoError(t, l.Acquire(owner, 5))
	assert.Equal(t, 2, l.Toll(5))
	require.NoError(t, l.Acquire(owner, 5))
	assert.Equal(t, 4, l.Toll(5))
	require.NoError(t, l.Upgrade(owner, 5))
	assert.Equal(t, 8, l.Toll(5))

	assert.Error(t, l.Upgrade(owner, 5), "level is capped at 3")
	assert.Equal(t, 8, l.Toll(5))
}

func TestAcquireRejections(t *testing.T) {
	l := NewLandLedger(2)
	a, b := uuid.New(), uuid.New()

	assert.Error(t, l.Acquire(a, LuckyCellA))
	assert.Error(t, l.Acquire(a, 0))
	assert.Error(t, l.Acquire(a, 25))

	require.NoError(t, l.Acquire(a, 3))
	assert.Error(t, l.Acquire(b, 3), "cell belongs to another player")
	assert.Error(t, l.Upgrade(b, 3))
}

func TestExchangeSwapsFullRecords(t *testing.T) {
	l := NewLandLedger(2)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, l.Acquire(a, 3))
	require.NoError(t, l.Acquire(a, 3)) // level 2
	require.NoError(t, l.Acquire(b, 7))

	require.NoError(t, l.Exchange(3, 7))
	assert.Equal(t, LandCell{Owner: b, Level: 1}, l.Cell(3))
	assert.Equal(t, LandCell{Owner: a, Level: 2}, l.Cell(7))

	assert.Error(t, l.Exchange(3, 3))
	assert.Error(t, l.Exchange(3, LuckyCellB))
}

func TestUpgradableLists(t *testing.T) {
	l := NewLandLedger(2)
	owner := uuid.New()
	require.NoError(t, l.Acquire(owner, 2))
	require.NoError(t, l.Acquire(owner, 9))
	require.NoError(t, l.Acquire(owner, 9))
	require.NoError(t, l.Upgrade(owner, 9)) // maxed

	assert.Equal(t, []int{2}, l.Upgradable(owner))
}

func TestChargeTollBankruptsAtZero(t *testing.T) {
	l := NewLandLedger(2)
	owner := &models.Player{ID: uuid.New(), TotalScore: 0}
	payer := &models.Player{ID: uuid.New(), TotalScore: 3}
	require.NoError(t, l.Acquire(owner.ID, 5))
	require.NoError(t, l.Acquire(owner.ID, 5))
	require.NoError(t, l.Upgrade(owner.ID, 5)) // toll 8

	paid := l.ChargeToll(payer, owner, 5)
	assert.Equal(t, 3, paid, "capped at the payer's total")
	assert.Equal(t, 0, payer.TotalScore)
	assert.Equal(t, 3, owner.TotalScore)
}

func TestSnapshotCellsRoundTrip(t *testing.T) {
	l := NewLandLedger(2)
	owner := uuid.New()
	require.NoError(t, l.Acquire(owner, 12))

	cells := l.Cells()
	restored := NewLandLedger(2)
	restored.SetCells(cells)
	assert.Equal(t, l.Cell(12), restored.Cell(12))
	assert.Equal(t, l.Toll(12), restored.Toll(12))
}
