// internal/game/board_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCellWrapsAroundTheLoop(t *testing.T) {
	assert.Equal(t, 6, NextCell(1, 5))
	assert.Equal(t, 1, NextCell(24, 1))
	assert.Equal(t, 3, NextCell(22, 5))
	assert.Equal(t, 1, NextCell(1, 24))
}

func TestLuckyCellsCarryNoSymbol(t *testing.T) {
	assert.True(t, IsLuckyCell(LuckyCellA))
	assert.True(t, IsLuckyCell(LuckyCellB))
	assert.Equal(t, SymbolNone, SymbolAt(LuckyCellA))
	assert.Equal(t, SymbolNone, SymbolAt(LuckyCellB))
	assert.Equal(t, SymbolNone, SymbolAt(0))
	assert.Equal(t, SymbolNone, SymbolAt(25))
}

func TestCellsWithSymbol(t *testing.T) {
	assert.Equal(t, []int{7, 14, 23}, CellsWithSymbol(SymbolBell))
	assert.Equal(t, []int{15, 16}, CellsWithSymbol(SymbolSun))
}

func TestEveryWalkableCellHasSymbolOrLuck(t *testing.T) {
	for cell := 1; cell <= BoardSize; cell++ {
		if IsLuckyCell(cell) {
			continue
		}
		assert.NotEqual(t, SymbolNone, SymbolAt(cell), "cell %d", cell)
	}
}
