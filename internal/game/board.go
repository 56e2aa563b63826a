// internal/game/board.go
package game

// Symbol is one of the eight wagerable board icons. Lucky cells carry no
// symbol; they route through the event resolver instead.
type Symbol string

const (
	SymbolNone       Symbol = ""
	SymbolApple      Symbol = "apple"
	SymbolOrange     Symbol = "orange"
	SymbolPapaya     Symbol = "papaya"
	SymbolWatermelon Symbol = "watermelon"
	SymbolBell       Symbol = "bell"
	SymbolStar       Symbol = "star"
	SymbolMoon       Symbol = "moon"
	SymbolSun        Symbol = "sun"
)

// Symbols lists the wagerable icons in payout order.
var Symbols = []Symbol{
	SymbolApple, SymbolOrange, SymbolPapaya, SymbolWatermelon,
	SymbolBell, SymbolStar, SymbolMoon, SymbolSun,
}

// BoardSize is the number of walkable cells; cell 0 is the unused start cell.
const BoardSize = 24

// Lucky cells trigger the event resolver instead of normal landing effects.
const (
	LuckyCellA = 10
	LuckyCellB = 22
)

// boardLayout maps cell id (1..24) to its symbol. Index 0 is the start cell.
var boardLayout = [BoardSize + 1]Symbol{
	1:  SymbolOrange,
	2:  SymbolApple,
	3:  SymbolMoon,
	4:  SymbolMoon,
	5:  SymbolWatermelon,
	6:  SymbolPapaya,
	7:  SymbolBell,
	8:  SymbolStar,
	9:  SymbolApple,
	10: SymbolNone, // lucky
	11: SymbolOrange,
	12: SymbolPapaya,
	13: SymbolApple,
	14: SymbolBell,
	15: SymbolSun,
	16: SymbolSun,
	17: SymbolWatermelon,
	18: SymbolPapaya,
	19: SymbolOrange,
	20: SymbolApple,
	21: SymbolStar,
	22: SymbolNone, // lucky
	23: SymbolBell,
	24: SymbolWatermelon,
}

// SymbolAt returns the symbol on the given cell, or SymbolNone for the start
// cell, lucky cells and out-of-range ids.
func SymbolAt(cell int) Symbol {
	if cell < 1 || cell > BoardSize {
		return SymbolNone
	}
	return boardLayout[cell]
}

// IsLuckyCell reports whether the cell triggers the event resolver.
func IsLuckyCell(cell int) bool {
	return cell == LuckyCellA || cell == LuckyCellB
}

// CellsWithSymbol lists every cell carrying the symbol, in board order.
func CellsWithSymbol(sym Symbol) []int {
	var out []int
	for id := 1; id <= BoardSize; id++ {
		if boardLayout[id] == sym {
			out = append(out, id)
		}
	}
	return out
}

// NextCell walks steps cells forward on the loop, wrapping 24 back to 1.
func NextCell(from, steps int) int {
	pos := from
	for i := 0; i < steps; i++ {
		pos++
		if pos > BoardSize {
			pos = 1
		}
	}
	return pos
}
