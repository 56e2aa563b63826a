// internal/game/duel.go
package game

import (
	"fmt"

	"github.com/google/uuid"

	"fruitloop/internal/models"
)

// DuelState is the transient head-to-head triggered by a dare card. Cards
// drawn here live in per-side buffers, never in the players' hands; the
// buffers drain into the discard pile when the duel ends.
type DuelState struct {
	Challenger *models.Player
	Target     *models.Player
	Pool       int
	Current    *models.Player

	buffers map[uuid.UUID][]models.Card
	stood   map[uuid.UUID]bool
}

func (d *DuelState) other(p *models.Player) *models.Player {
	if p == d.Challenger {
		return d.Target
	}
	return d.Challenger
}

// Buffer returns a copy of one side's duel cards.
func (d *DuelState) Buffer(id uuid.UUID) []models.Card {
	return append([]models.Card(nil), d.buffers[id]...)
}

func (d *DuelState) sum(id uuid.UUID) int {
	s := 0
	for _, c := range d.buffers[id] {
		s += c.Value
	}
	return s
}

func (e *Engine) startDuel(challenger, target *models.Player) {
	e.phase = PhaseDuel
	e.duel = &DuelState{
		Challenger: challenger,
		Target:     target,
		Pool:       e.cfg.Rules.DuelPool,
		Current:    target, // the challenged side draws first
		buffers:    make(map[uuid.UUID][]models.Card),
		stood:      make(map[uuid.UUID]bool),
	}
	e.announce("duel_started", map[string]any{
		"challenger": challenger.Name,
		"target":     target.Name,
		"pool":       e.duel.Pool,
	})
	e.reflect()
	e.duelStep()
}

func (e *Engine) duelCanAct(p *models.Player) bool {
	d := e.duel
	return !d.stood[p.ID] && len(d.buffers[p.ID]) < e.cfg.Rules.DuelHandCap
}

// duelStep advances the draw loop: resolve on pool exhaustion or when
// neither side can act, otherwise hand the move to a side that still can.
func (e *Engine) duelStep() {
	d := e.duel
	if d == nil {
		return
	}
	if d.Pool <= 0 {
		e.resolveDuel(nil)
		return
	}
	if !e.duelCanAct(d.Current) {
		other := d.other(d.Current)
		if !e.duelCanAct(other) {
			e.resolveDuel(nil)
			return
		}
		d.Current = other
	}
	cur := d.Current
	if cur.IsAI {
		e.schedule(e.cfg.AIThink(), func() {
			if e.duel != d || d.Current != cur {
				return
			}
			e.aiDuelMove(cur)
		})
		return
	}
	e.announce("duel_awaiting", map[string]any{"player": cur.Name, "pool": d.Pool})
}

// DuelDraw pulls one card for the active duelist.
func (e *Engine) DuelDraw(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.duelGuard(playerID)
	if err != nil {
		return err
	}
	if !e.duelCanAct(p) {
		return fmt.Errorf("engine: duelist cannot draw further")
	}
	e.duelDraw(p)
	e.pump()
	return nil
}

// DuelGiveUp makes the active duelist stand on their current sum.
func (e *Engine) DuelGiveUp(playerID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.duelGuard(playerID)
	if err != nil {
		return err
	}
	e.duelStand(p)
	e.pump()
	return nil
}

func (e *Engine) duelGuard(playerID uuid.UUID) (*models.Player, error) {
	if e.phase != PhaseDuel || e.duel == nil {
		return nil, fmt.Errorf("engine: no duel in progress")
	}
	p := e.duel.Current
	if p.ID != playerID {
		return nil, fmt.Errorf("engine: not %s's duel move", playerID)
	}
	return p, nil
}

// duelDraw owns the pool decrement: one per successful draw by either side,
// nowhere else. A failed draw ends the duel without consuming a tick.
func (e *Engine) duelDraw(p *models.Player) {
	d := e.duel
	card, ok := e.drawCard(true)
	if !ok {
		e.announce("deck_exhausted", map[string]any{"player": p.Name})
		e.resolveDuel(nil)
		return
	}
	d.Pool--
	buf := append(d.buffers[p.ID], card)
	d.buffers[p.ID] = buf
	e.announce("duel_card_drawn", map[string]any{
		"player": p.Name,
		"card":   card.String(),
		"pool":   d.Pool,
	})
	for _, prev := range buf[:len(buf)-1] {
		if prev.Value == card.Value {
			e.announce("duel_bust", map[string]any{"player": p.Name, "value": card.Value})
			e.resolveDuel(d.other(p))
			return
		}
	}
	d.Current = d.other(p)
	e.schedule(e.cfg.Announce(), e.duelStep)
}

func (e *Engine) duelStand(p *models.Player) {
	d := e.duel
	d.stood[p.ID] = true
	e.announce("duel_stand", map[string]any{"player": p.Name, "sum": d.sum(p.ID)})
	d.Current = d.other(p)
	e.duelStep()
}

// resolveDuel ends the duel. forced names a winner decided outside the sum
// comparison (opponent busted); nil compares sums, equal sums tie and pay
// both sides. A winning challenger keeps acting; any other outcome passes
// the turn.
func (e *Engine) resolveDuel(forced *models.Player) {
	d := e.duel
	challengerSum, targetSum := d.sum(d.Challenger.ID), d.sum(d.Target.ID)
	winner := forced
	if winner == nil {
		switch {
		case challengerSum > targetSum:
			winner = d.Challenger
		case targetSum > challengerSum:
			winner = d.Target
		}
	}
	bonus := e.cfg.Rules.DuelBonus
	if winner != nil {
		winner.RoundBonus += bonus
		e.announce("duel_won", map[string]any{"winner": winner.Name, "bonus": bonus})
	} else {
		d.Challenger.RoundBonus += bonus
		d.Target.RoundBonus += bonus
		e.announce("duel_tied", map[string]any{"bonus": bonus})
	}
	e.recompute(d.Challenger)
	e.recompute(d.Target)
	for _, side := range []*models.Player{d.Challenger, d.Target} {
		e.discard = append(e.discard, d.buffers[side.ID]...)
	}
	challenger := d.Challenger
	challengerWon := winner == challenger
	e.duel = nil
	e.phase = PhaseBusy
	e.reflect()
	if challengerWon && !challenger.Terminal() {
		e.readyForAction(challenger)
		return
	}
	e.nextTurn()
}
