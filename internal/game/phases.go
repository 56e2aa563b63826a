// internal/game/phases.go
package game

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fruitloop/internal/models"
)

// beginRound opens the betting window (rounds after the first) and then
// hands control to the turn rotation.
func (e *Engine) beginRound() {
	e.announce("round_started", map[string]any{"round": e.roundCount})
	if e.roundCount == 1 {
		// Nobody has score to stake yet.
		e.startTurns()
		return
	}
	e.openBettingPhase()
}

func (e *Engine) openBettingPhase() {
	e.phase = PhaseBetting
	state := &bettingState{confirmed: make(map[uuid.UUID]bool)}
	e.betting = state
	for _, p := range e.ctx.Players {
		if p.IsAI {
			e.ctx.Wagers.PlaceAIStakes(p)
			state.confirmed[p.ID] = true
			continue
		}
		if p.TotalScore < e.cfg.Rules.MinStake {
			// Cannot meet the minimum stake; nothing to wait for.
			state.confirmed[p.ID] = true
		}
	}
	e.reflect()
	if e.allConfirmed() {
		e.closeBettingPhase()
		return
	}
	e.announce("betting_opened", map[string]any{"seconds": e.cfg.Timers.BettingPhaseSec})
	e.scheduleTimeout(e.cfg.BettingPhase(), func() {
		if e.betting != state {
			return
		}
		e.announce("betting_timeout", nil)
		e.closeBettingPhase()
	})
}

func (e *Engine) allConfirmed() bool {
	for _, p := range e.ctx.Players {
		if !e.betting.confirmed[p.ID] {
			return false
		}
	}
	return true
}

func (e *Engine) maybeCloseBetting() {
	if e.betting != nil && e.allConfirmed() {
		e.closeBettingPhase()
	}
}

func (e *Engine) closeBettingPhase() {
	e.betting = nil
	e.announce("betting_closed", nil)
	e.startTurns()
}

func (e *Engine) startTurns() {
	e.currentIdx = e.startIdx
	e.startTurn()
}

// startTurn runs the turn-start guards for the current player: round-over
// check, terminal skip, the one-time frozen skip, then the item window or
// the action phase.
func (e *Engine) startTurn() {
	if e.roundComplete() {
		e.roundOver()
		return
	}
	p := e.current()
	if p.Terminal() {
		e.advance()
		e.startTurn()
		return
	}
	if p.State == models.StateFrozen {
		// Thaw and skip exactly once.
		p.State = models.StateWaiting
		e.announce("player_thawed", map[string]any{"player": p.Name})
		e.advance()
		e.startTurn()
		return
	}
	if p.State == models.StateWaiting {
		p.State = models.StatePlaying
	}
	e.announce("turn_started", map[string]any{"player": p.Name, "round": e.roundCount})
	if e.roundCount > 1 && len(p.Items) > 0 && !p.ItemDone {
		e.openItemPhase(p)
		return
	}
	e.readyForAction(p)
}

func (e *Engine) openItemPhase(p *models.Player) {
	e.phase = PhaseItem
	state := &itemPhaseState{player: p}
	e.itemPhase = state
	e.reflect()
	e.announce("item_window_opened", map[string]any{
		"player":  p.Name,
		"seconds": e.cfg.Timers.ItemPhaseSec,
	})
	if p.IsAI {
		e.schedule(e.cfg.AIThink(), func() {
			if e.itemPhase != state {
				return
			}
			e.aiItemDecision(p)
		})
		return
	}
	e.scheduleTimeout(e.cfg.ItemPhase(), func() {
		if e.itemPhase != state {
			return
		}
		e.closeItemPhase(p, "timeout")
	})
}

// closeItemPhase marks the player's one item decision for the round as
// spent and moves on to the action phase.
func (e *Engine) closeItemPhase(p *models.Player, how string) {
	e.itemPhase = nil
	p.ItemDone = true
	if e.choice != nil && e.choice.Player == p.ID {
		// A selection opened from this window dies with it.
		e.choice = nil
	}
	e.announce("item_window_closed", map[string]any{"player": p.Name, "how": how})
	e.readyForAction(p)
}

// readyForAction exposes draw/give-up, auto-resolving for hand caps and AI
// players.
func (e *Engine) readyForAction(p *models.Player) {
	if p.Terminal() {
		e.nextTurn()
		return
	}
	if p.NumberCount() >= e.cfg.Rules.HandNumberCap {
		e.announce("hand_cap_reached", map[string]any{"player": p.Name})
		e.doGiveUp(p)
		return
	}
	e.phase = PhaseAction
	e.reflect()
	if p.IsAI {
		e.schedule(e.cfg.AIThink(), func() {
			if e.phase != PhaseAction || e.current() != p {
				return
			}
			e.aiTakeAction(p)
		})
	}
}

// doDraw pulls one card for p, or a two-card burst while the feast mode is
// lit, and routes it through effect resolution.
func (e *Engine) doDraw(p *models.Player) {
	e.phase = PhaseBusy
	if e.feastMode {
		e.startForceDraw(p, 2, true, false, func() {
			e.nextTurn()
		})
		return
	}
	card, ok := e.drawCard(false)
	if !ok {
		e.announce("deck_exhausted", map[string]any{"player": p.Name})
		e.doGiveUp(p)
		return
	}
	e.resolveDraw(p, card, true)
}

func (e *Engine) doGiveUp(p *models.Player) {
	e.phase = PhaseBusy
	e.recompute(p)
	p.State = models.StateDone
	e.announce("gave_up", map[string]any{"player": p.Name, "roundScore": p.RoundScore})
	e.nextTurn()
}

// drawCard pulls from the pile, reshuffling once on exhaustion. A second
// exhaustion is surfaced to the caller as a failed draw.
func (e *Engine) drawCard(numbersOnly bool) (models.Card, bool) {
	if numbersOnly {
		if c, ok := e.ctx.Deck.DrawNumber(); ok {
			return c, true
		}
	} else if c, ok := e.ctx.Deck.DrawTop(); ok {
		return c, true
	}
	e.reshuffleDeck()
	if numbersOnly {
		return e.ctx.Deck.DrawNumber()
	}
	return e.ctx.Deck.DrawTop()
}

// reshuffleDeck rebuilds the pile minus everything the live hands make
// unsafe. Discarded cards return to the pile, so the tracked discard resets
// to the surplus copies the deck excluded for held hand values; the card
// count across hands, pile and discard stays a constant multiset.
func (e *Engine) reshuffleDeck() {
	excluded := e.ctx.Deck.Reshuffle(e.ctx.Players)
	e.discard = append(e.discard[:0], excluded...)
	e.announce("deck_reshuffled", map[string]any{"remaining": e.ctx.Deck.Remaining()})
}

// nextTurn rotates to the next living player, or ends the round.
func (e *Engine) nextTurn() {
	if cur := e.current(); cur.State == models.StatePlaying {
		cur.State = models.StateWaiting
	}
	if e.roundComplete() {
		e.roundOver()
		return
	}
	e.advance()
	e.schedule(e.cfg.Announce(), e.startTurn)
}

func (e *Engine) advance() {
	e.currentIdx = (e.currentIdx + 1) % len(e.ctx.Players)
}

// roundComplete reports whether nobody is left to act this round.
func (e *Engine) roundComplete() bool {
	for _, p := range e.ctx.Players {
		switch p.State {
		case models.StateWaiting, models.StatePlaying, models.StateFrozen:
			return false
		}
	}
	return true
}

// roundOver banks round scores, checks the win threshold, and hands off to
// the shop.
func (e *Engine) roundOver() {
	e.phase = PhaseBusy
	for _, p := range e.ctx.Players {
		e.recompute(p)
		if p.State == models.StateDone || p.State == models.StateFrozen {
			p.TotalScore += p.RoundScore
		}
		e.announce("round_banked", map[string]any{
			"player":     p.Name,
			"roundScore": p.RoundScore,
			"totalScore": p.TotalScore,
			"state":      string(p.State),
		})
	}
	e.reflect()
	if w := e.checkWinner(); w != nil {
		e.endGame(w)
		return
	}
	if e.cfg.Rules.MaxRounds > 0 && e.roundCount >= e.cfg.Rules.MaxRounds {
		e.announce("round_cap_reached", map[string]any{"rounds": e.roundCount})
		e.endGame(e.leader())
		return
	}
	e.schedule(e.cfg.Announce(), e.openShop)
}

func (e *Engine) leader() *models.Player {
	best := e.ctx.Players[0]
	for _, p := range e.ctx.Players[1:] {
		if p.TotalScore > best.TotalScore {
			best = p
		}
	}
	return best
}

func (e *Engine) checkWinner() *models.Player {
	var best *models.Player
	for _, p := range e.ctx.Players {
		if p.TotalScore >= e.cfg.Rules.WinScore {
			if best == nil || p.TotalScore > best.TotalScore {
				best = p
			}
		}
	}
	return best
}

func (e *Engine) endGame(w *models.Player) {
	e.phase = PhaseOver
	e.winner = w
	e.choice = nil
	e.gen++
	e.log.WithFields(logrus.Fields{
		"winner": w.Name,
		"total":  w.TotalScore,
		"rounds": e.roundCount,
	}).Info("game over")
	e.announce("game_over", map[string]any{"winner": w.Name, "total": w.TotalScore})
	e.reflect()
}

// startNextRound resets per-round state, rotates the opening seat, rebuilds
// the deck and odds, and opens the next round.
func (e *Engine) startNextRound() {
	e.roundCount++
	for _, p := range e.ctx.Players {
		p.ResetRound()
	}
	e.feastMode = false
	e.discard = e.discard[:0]
	e.ctx.Deck.Reshuffle(e.ctx.Players)
	e.ctx.Wagers.ResetRound()
	e.startIdx = (e.startIdx + 1) % len(e.ctx.Players)
	e.beginRound()
}

/// recompute rebuilds the player's round score from the hand: numbers plus
// score cards, doubled per multiplier card, plus the flat bonus pot.
func (e *Engine) recompute(p *models.Player) {
	if p.State == models.StateBust {
		p.RoundScore = 0
		return
	}
	sum := 0
	mult := 1
	for _, c := range p.Hand {
		switch c.Kind {
		case models.KindNumber, models.KindScore:
			sum += c.Value
		case models.KindMult:
			mult *= c.Value
		}
	}
	p.RoundScore = sum*mult + p.RoundBonus
}
