// internal/game/land.go
package game

import (
	"fmt"

	"github.com/google/uuid"

	"fruitloop/internal/models"
)

// LandCell is one board cell's ownership record. Owner is uuid.Nil while
// unowned; Level is clamped to 1..3 once owned.
type LandCell struct {
	Owner uuid.UUID `json:"owner"`
	Level int       `json:"level"`
}

const maxLandLevel = 3

// LandLedger tracks ownership and toll levels for the 24 walkable cells.
// Cell 0 and the lucky cells can never be owned.
type LandLedger struct {
	cells    [BoardSize + 1]LandCell
	tollBase int
}

func NewLandLedger(tollBase int) *LandLedger {
	return &LandLedger{tollBase: tollBase}
}

// Cell returns the record for a cell id (zero value for out-of-range ids).
func (l *LandLedger) Cell(id int) LandCell {
	if id < 0 || id > BoardSize {
		return LandCell{}
	}
	return l.cells[id]
}

// Toll returns the charge for landing on the cell: base * 2^(level-1).
func (l *LandLedger) Toll(id int) int {
	c := l.Cell(id)
	if c.Owner == uuid.Nil || c.Level < 1 {
		return 0
	}
	return l.tollBase << (c.Level - 1)
}

// ownable rejects the start cell and the lucky cells.
func ownable(id int) bool {
	return id >= 1 && id <= BoardSize && !IsLuckyCell(id)
}

// Acquire claims an unowned cell at level 1, or raises the level of a cell
// the player already owns. Errors leave the ledger untouched.
func (l *LandLedger) Acquire(owner uuid.UUID, id int) error {
	if !ownable(id) {
		return fmt.Errorf("land: cell %d cannot be owned", id)
	}
	c := &l.cells[id]
	switch {
	case c.Owner == uuid.Nil:
		c.Owner = owner
		c.Level = 1
	case c.Owner == owner:
		if c.Level >= maxLandLevel {
			return fmt.Errorf("land: cell %d is already at max level", id)
		}
		c.Level++
	default:
		return fmt.Errorf("land: cell %d belongs to another player", id)
	}
	return nil
}

// Upgrade raises the level of a cell the player owns.
func (l *LandLedger) Upgrade(owner uuid.UUID, id int) error {
	if !ownable(id) {
		return fmt.Errorf("land: cell %d cannot be owned", id)
	}
	c := &l.cells[id]
	if c.Owner != owner {
		return fmt.Errorf("land: cell %d is not yours", id)
	}
	if c.Level >= maxLandLevel {
		return fmt.Errorf("land: cell %d is already at max level", id)
	}
	c.Level++
	return nil
}

// Exchange swaps the full ownership records of two distinct cells. Either
// side may be unowned.
func (l *LandLedger) Exchange(a, b int) error {
	if !ownable(a) || !ownable(b) {
		return fmt.Errorf("land: cells %d/%d cannot be exchanged", a, b)
	}
	if a == b {
		return fmt.Errorf("land: cannot exchange a cell with itself")
	}
	l.cells[a], l.cells[b] = l.cells[b], l.cells[a]
	return nil
}

// Upgradable lists the player's cells below max level.
func (l *LandLedger) Upgradable(owner uuid.UUID) []int {
	var out []int
	for id := 1; id <= BoardSize; id++ {
		c := l.cells[id]
		if c.Owner == owner && c.Level < maxLandLevel {
			out = append(out, id)
		}
	}
	return out
}

// ChargeToll moves the toll for the cell from payer to owner, capped at the
// payer's total score (a partial payment bankrupts the payer to zero). A
// round-long tax exemption waives the charge without being consumed.
// Returns the amount actually paid.
func (l *LandLedger) ChargeToll(payer, owner *models.Player, id int) int {
	if payer.TaxFree {
		return 0
	}
	toll := l.Toll(id)
	if toll > payer.TotalScore {
		toll = payer.TotalScore
	}
	payer.TotalScore -= toll
	owner.TotalScore += toll
	return toll
}

// Cells exposes the ledger for snapshots.
func (l *LandLedger) Cells() []LandCell {
	out := make([]LandCell, BoardSize+1)
	copy(out, l.cells[:])
	return out
}

// SetCells restores the ledger from a snapshot.
func (l *LandLedger) SetCells(cells []LandCell) {
	for i := range l.cells {
		l.cells[i] = LandCell{}
	}
	for i, c := range cells {
		if i <= BoardSize {
			l.cells[i] = c
		}
	}
}
