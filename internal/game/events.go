// internal/game/events.go
package game

import (
	"fruitloop/internal/models"
)

// resolveLuckyCell rolls once and dispatches into the cell's probability
// bands. Every branch funnels back through finishAction; the resolver
// never decides turn succession itself.
func (e *Engine) resolveLuckyCell(p *models.Player) {
	roll := e.ctx.RNG.Float64()
	e.announce("lucky_cell", map[string]any{"player": p.Name, "cell": p.Position})
	if p.Position == LuckyCellA {
		e.resolveLuckyA(p, roll)
		return
	}
	e.resolveLuckyB(p, roll)
}

// resolveLuckyA is the mild lucky cell: five even bands.
func (e *Engine) resolveLuckyA(p *models.Player, roll float64) {
	switch {
	case roll < 0.2:
		e.grantBonusSpecial(p)
	case roll < 0.4:
		e.announce("extra_action", map[string]any{"player": p.Name})
		e.finishAction(p, true)
	case roll < 0.6:
		e.grantFreeProphecy(p)
	case roll < 0.8:
		e.resolveWagerCells(p, []int{e.randomBoardCell()})
	default:
		e.resolveWagerCells(p, []int{e.randomBoardCell(), e.randomBoardCell()})
	}
}

// resolveLuckyB is the wild lucky cell: bigger swings, rarer bands.
func (e *Engine) resolveLuckyB(p *models.Player, roll float64) {
	switch {
	case roll < 0.3:
		e.grantHighValueSpecial(p)
	case roll < 0.6:
		sym := SymbolAt(e.randomBoardCell())
		e.announce("symbol_chain", map[string]any{"symbol": string(sym)})
		e.resolveWagerCells(p, CellsWithSymbol(sym))
	case roll < 0.9:
		cells := make([]int, 0, 3)
		for i := 1; i <= 3; i++ {
			cells = append(cells, NextCell(p.Position, i))
		}
		e.announce("cell_train", map[string]any{"cells": cells})
		e.resolveWagerCells(p, cells)
	case roll < 0.95:
		e.announce("lightning", nil)
		e.resolveWagerCells(p, e.randomDistinctCells(7))
	default:
		e.announce("jackpot", nil)
		all := make([]int, 0, BoardSize)
		for id := 1; id <= BoardSize; id++ {
			all = append(all, id)
		}
		e.resolveWagerCells(p, all)
	}
}

// grantBonusSpecial hands out a random special from the sub-pool without
// breaking the global scarcity caps.
func (e *Engine) grantBonusSpecial(p *models.Player) {
	card, ok := e.ctx.Deck.DrawBonusSpecial()
	if !ok {
		e.announce("bonus_skipped", map[string]any{"player": p.Name})
		e.finishAction(p, false)
		return
	}
	e.announce("bonus_special", map[string]any{"player": p.Name, "card": card.String()})
	e.resolveDraw(p, card, false)
}

// grantHighValueSpecial prefers the impactful kinds; freeze only joins the
// pool while someone else is still in the round to freeze.
func (e *Engine) grantHighValueSpecial(p *models.Player) {
	kinds := []models.CardKind{
		models.KindMult, models.KindFlash, models.KindSecondChance, models.KindScore,
	}
	if len(e.ctx.PlayingOthers(p.ID)) > 0 {
		kinds = append(kinds, models.KindFreeze)
	}
	card, ok := e.ctx.Deck.DrawBonusSpecial(kinds...)
	if !ok {
		card, ok = e.ctx.Deck.DrawBonusSpecial()
	}
	if !ok {
		e.announce("bonus_skipped", map[string]any{"player": p.Name})
		e.finishAction(p, false)
		return
	}
	e.announce("bonus_special", map[string]any{"player": p.Name, "card": card.String()})
	e.resolveDraw(p, card, false)
}

func (e *Engine) grantFreeProphecy(p *models.Player) {
	e.promptChoice(p, ChooseProphecy, "free prophecy: predict your next draw",
		[]string{string(models.GuessSmall), string(models.GuessBig)},
		func(option string) error {
			p.Prophecy = models.ProphecyGuess(option)
			e.announce("prophecy_set", map[string]any{"player": p.Name, "guess": option})
			e.finishAction(p, false)
			return nil
		})
}

// resolveWagerCells settles every player's stakes across the given cells
// and returns control to the normal flow.
func (e *Engine) resolveWagerCells(p *models.Player, cells []int) {
	wins := e.ctx.Wagers.ResolveCells(e.ctx.Players, cells)
	for id, amount := range wins {
		if wp := e.ctx.PlayerByID(id); wp != nil {
			e.announce("wager_won", map[string]any{"player": wp.Name, "amount": amount})
		}
	}
	e.finishAction(p, false)
}

func (e *Engine) randomBoardCell() int {
	for {
		cell := 1 + e.ctx.RNG.Intn(BoardSize)
		if !IsLuckyCell(cell) {
			return cell
		}
	}
}

func (e *Engine) randomDistinctCells(n int) []int {
	seen := make(map[int]bool)
	var out []int
	for len(out) < n {
		cell := e.randomBoardCell()
		if seen[cell] {
			continue
		}
		seen[cell] = true
		out = append(out, cell)
	}
	return out
}
