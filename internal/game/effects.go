// internal/game/effects.go
package game

import (
	"fmt"

	"github.com/google/uuid"

	"fruitloop/internal/models"
)

// resolveDraw applies one drawn card to the player: prophecy settlement
// first, then the per-kind effect. move controls whether a numeric draw
// advances the token; forced and bonus draws suppress it.
func (e *Engine) resolveDraw(p *models.Player, card models.Card, move bool) {
	e.announce("card_drawn", map[string]any{"player": p.Name, "card": card.String()})
	e.settleProphecy(p, card)

	switch card.Kind {
	case models.KindNumber:
		p.Hand = append(p.Hand, card)
		if p.HoldsNumber(card.Value, len(p.Hand)-1) {
			e.resolveBust(p)
			return
		}
		e.recompute(p)
		if move && card.Value > 0 {
			e.movePlayer(p, card.Value)
			return
		}
		e.finishAction(p, false)

	case models.KindScore, models.KindMult, models.KindSecondChance, models.KindFlash:
		// Passive specials sit in the hand until they matter.
		p.Hand = append(p.Hand, card)
		e.recompute(p)
		e.finishAction(p, false)

	case models.KindFeast:
		e.discard = append(e.discard, card)
		e.feastMode = true
		e.announce("feast_started", map[string]any{"player": p.Name})
		e.finishAction(p, false)

	case models.KindFreeze, models.KindFlip3:
		e.discard = append(e.discard, card)
		e.chooseTarget(p, card.Kind, true)

	case models.KindDare:
		e.discard = append(e.discard, card)
		e.chooseTarget(p, card.Kind, false)

	default:
		e.log.WithField("card", card.String()).Warn("unhandled card kind")
		e.finishAction(p, false)
	}
}

// settleProphecy resolves a pending size-class guess against this exact
// draw, then clears it. Specials pay the consolation reward.
func (e *Engine) settleProphecy(p *models.Player, card models.Card) {
	if p.Prophecy == models.GuessNone {
		return
	}
	guess := p.Prophecy
	p.Prophecy = models.GuessNone
	if !card.IsNumber() {
		p.RoundBonus += e.cfg.Rules.ProphecyNear
		e.announce("prophecy_special", map[string]any{"player": p.Name, "reward": e.cfg.Rules.ProphecyNear})
		return
	}
	small := card.Value <= 6
	if (small && guess == models.GuessSmall) || (!small && guess == models.GuessBig) {
		p.RoundBonus += e.cfg.Rules.ProphecyHit
		e.announce("prophecy_hit", map[string]any{"player": p.Name, "reward": e.cfg.Rules.ProphecyHit})
		return
	}
	e.announce("prophecy_missed", map[string]any{"player": p.Name})
}

// resolveBust handles a duplicate numeric value in the hand: protection
// first, then a held second chance, then the real bust.
func (e *Engine) resolveBust(p *models.Player) {
	conflictIdx := len(p.Hand) - 1
	if p.Protected {
		p.Protected = false
		e.discard = append(e.discard, p.RemoveCard(conflictIdx))
		e.announce("bust_protected", map[string]any{"player": p.Name})
		e.recompute(p)
		e.finishAction(p, true)
		return
	}
	if i := p.IndexOfSpecial(models.KindSecondChance); i >= 0 {
		// Conflict card sits at the end, so removing it first keeps i valid.
		e.discard = append(e.discard, p.RemoveCard(conflictIdx))
		e.discard = append(e.discard, p.RemoveCard(i))
		e.announce("second_chance_used", map[string]any{"player": p.Name})
		e.recompute(p)
		e.finishAction(p, false)
		return
	}
	p.RoundScore = 0
	p.RoundBonus = 0
	p.State = models.StateBust
	e.forceDraw = nil
	e.announce("busted", map[string]any{"player": p.Name})
	e.reflect()
	e.nextTurn()
}

// chooseTarget prompts for a victim among players still in the round.
// Zero candidates turns the effect into a no-op.
func (e *Engine) chooseTarget(p *models.Player, kind models.CardKind, includeSelf bool) {
	if e.forceDraw != nil && kind != models.KindFreeze {
		// A second draw sequence or a duel cannot nest inside a running one.
		e.announce("effect_fizzled", map[string]any{"player": p.Name, "card": kind.String()})
		e.finishAction(p, false)
		return
	}
	var candidates []*models.Player
	for _, c := range e.ctx.Players {
		if c.State != models.StateWaiting && c.State != models.StatePlaying {
			continue
		}
		if !includeSelf && c.ID == p.ID {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		e.announce("no_valid_target", map[string]any{"player": p.Name, "card": kind.String()})
		e.finishAction(p, false)
		return
	}
	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = c.ID.String()
	}
	e.promptChoice(p, ChooseTarget, fmt.Sprintf("choose a target for %s", kind), options, func(option string) error {
		id, err := uuid.Parse(option)
		if err != nil {
			return fmt.Errorf("engine: bad target id %q", option)
		}
		target := e.ctx.PlayerByID(id)
		if target == nil {
			return fmt.Errorf("engine: unknown target %s", id)
		}
		e.applyTargetEffect(p, target, kind)
		return nil
	})
}

// applyTargetEffect lands freeze/flip_3/dare on the chosen victim. A held
// flash card absorbs freeze and flip_3.
func (e *Engine) applyTargetEffect(actor, target *models.Player, kind models.CardKind) {
	if kind != models.KindDare && target.ID != actor.ID {
		if i := target.IndexOfSpecial(models.KindFlash); i >= 0 {
			e.discard = append(e.discard, target.RemoveCard(i))
			e.announce("flash_cancelled", map[string]any{
				"target": target.Name,
				"card":   kind.String(),
			})
			e.finishAction(actor, false)
			return
		}
	}
	switch kind {
	case models.KindFreeze:
		target.State = models.StateFrozen
		e.announce("player_frozen", map[string]any{"actor": actor.Name, "target": target.Name})
		e.finishAction(actor, false)
	case models.KindFlip3:
		e.announce("forced_draw_started", map[string]any{
			"actor":  actor.Name,
			"target": target.Name,
			"count":  3,
		})
		e.startForceDraw(target, 3, false, true, func() {
			e.finishAction(actor, false)
		})
	case models.KindDare:
		e.startDuel(actor, target)
	}
}

// movePlayer walks the token forward and resolves the landing: lucky-cell
// events, toll, then the landing wager.
func (e *Engine) movePlayer(p *models.Player, steps int) {
	from := p.Position
	p.Position = NextCell(from, steps)
	e.announce("moved", map[string]any{"player": p.Name, "from": from, "to": p.Position})
	if IsLuckyCell(p.Position) {
		e.resolveLuckyCell(p)
		return
	}
	cell := e.ctx.Land.Cell(p.Position)
	if cell.Owner != uuid.Nil && cell.Owner != p.ID {
		owner := e.ctx.PlayerByID(cell.Owner)
		if owner != nil {
			if p.TaxFree {
				e.announce("toll_waived", map[string]any{"player": p.Name, "cell": p.Position})
			} else if paid := e.ctx.Land.ChargeToll(p, owner, p.Position); paid > 0 {
				e.announce("toll_paid", map[string]any{
					"player": p.Name,
					"owner":  owner.Name,
					"cell":   p.Position,
					"amount": paid,
				})
			}
		}
	}
	if wins := e.ctx.Wagers.ResolveLanding([]*models.Player{p}, p.Position); len(wins) > 0 {
		e.announce("wager_won", map[string]any{"player": p.Name, "amount": wins[p.ID]})
	}
	e.finishAction(p, false)
}

// finishAction is the single funnel every resolution chain returns
// through: score recompute, forced-draw continuation, then either a bonus
// action for the same player or the next turn.
func (e *Engine) finishAction(p *models.Player, isBonus bool) {
	e.recompute(p)
	if fd := e.forceDraw; fd != nil {
		if fd.target.Terminal() {
			e.forceDraw = nil
			e.nextTurn()
			return
		}
		if fd.remaining > 0 {
			e.schedule(e.cfg.Announce(), e.processForceDraw)
			return
		}
		done := fd.done
		e.forceDraw = nil
		done()
		return
	}
	if isBonus {
		e.readyForAction(p)
		return
	}
	e.nextTurn()
}

func (e *Engine) startForceDraw(target *models.Player, count int, move, numbersOnly bool, done func()) {
	e.forceDraw = &forceDrawState{
		target:      target,
		remaining:   count,
		move:        move,
		numbersOnly: numbersOnly,
		done:        done,
	}
	e.processForceDraw()
}

// processForceDraw pulls the next card of a running sequence. Exhaustion
// cuts the sequence short but still runs its continuation.
func (e *Engine) processForceDraw() {
	fd := e.forceDraw
	if fd == nil {
		return
	}
	card, ok := e.drawCard(fd.numbersOnly)
	if !ok {
		e.announce("deck_exhausted", map[string]any{"player": fd.target.Name})
		done := fd.done
		e.forceDraw = nil
		done()
		return
	}
	fd.remaining--
	e.resolveDraw(fd.target, card, fd.move)
}
