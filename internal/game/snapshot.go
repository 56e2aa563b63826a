// internal/game/snapshot.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"fruitloop/internal/models"
)

// Snapshot is the serializable mid-game state: counters, players, both
// deck pools, the land ledger and the wager tables. Transient phase
// records (item/betting windows, forced draws, duels, pending choices)
// are deliberately absent; a restored game resumes at the top of the
// current player's turn.
type Snapshot struct {
	Round      int                              `json:"round"`
	StartIdx   int                              `json:"startIdx"`
	CurrentIdx int                              `json:"currentIdx"`
	Players    []*models.Player                 `json:"players"`
	Deck       []models.Card                    `json:"deck"`
	Specials   []models.Card                    `json:"specials"`
	Discard    []models.Card                    `json:"discard"`
	Land       []LandCell                       `json:"land"`
	Odds       map[Symbol]int                   `json:"odds"`
	Stakes     map[uuid.UUID]map[Symbol]int     `json:"stakes"`
}

// Snapshot captures the persistable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	players := make([]*models.Player, len(e.ctx.Players))
	for i, p := range e.ctx.Players {
		cp := *p
		cp.Hand = append([]models.Card(nil), p.Hand...)
		cp.Items = append([]models.ItemKind(nil), p.Items...)
		players[i] = &cp
	}
	return Snapshot{
		Round:      e.roundCount,
		StartIdx:   e.startIdx,
		CurrentIdx: e.currentIdx,
		Players:    players,
		Deck:       e.ctx.Deck.Cards(),
		Specials:   e.ctx.Deck.SpecialCards(),
		Discard:    append([]models.Card(nil), e.discard...),
		Land:       e.ctx.Land.Cells(),
		Odds:       e.ctx.Wagers.OddsTable(),
		Stakes:     e.ctx.Wagers.AllStakes(),
	}
}

// MarshalSnapshot serializes the current state as JSON.
func (e *Engine) MarshalSnapshot() ([]byte, error) {
	snap := e.Snapshot()
	return json.Marshal(snap)
}

// RestoreSnapshot loads a serialized snapshot and resumes play at the top
// of the current player's turn. Any error leaves the engine untouched so
// the caller can fall back to a fresh game.
func (e *Engine) RestoreSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return e.Restore(snap)
}

// Restore applies a decoded snapshot.
func (e *Engine) Restore(snap Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := validateSnapshot(&snap); err != nil {
		return err
	}

	// Invalidate every in-flight timer and transient record.
	e.gen++
	e.queue = nil
	e.itemPhase = nil
	e.betting = nil
	e.forceDraw = nil
	e.duel = nil
	e.shop = nil
	e.choice = nil
	e.feastMode = false
	e.winner = nil

	for _, p := range snap.Players {
		// Per-round status flags are never trusted from a snapshot; the
		// json tags already zero them, this guards hand-built snapshots.
		p.Protected = false
		p.TaxFree = false
		p.Prophecy = models.GuessNone
		p.ItemDone = false
		p.RoundBonus = 0
		if p.State == models.StatePlaying {
			p.State = models.StateWaiting
		}
		if p.Position < 1 || p.Position > BoardSize {
			p.Position = 1
		}
	}

	e.roundCount = snap.Round
	e.startIdx = snap.StartIdx
	e.currentIdx = snap.CurrentIdx
	e.discard = append(e.discard[:0], snap.Discard...)
	e.ctx.Players = snap.Players
	e.ctx.Deck.Restore(snap.Deck, snap.Specials)
	e.ctx.Land.SetCells(snap.Land)
	if len(snap.Odds) > 0 {
		e.ctx.Wagers.SetOdds(snap.Odds)
	}
	e.ctx.Wagers.RestoreStakes(snap.Stakes)
	for _, p := range e.ctx.Players {
		e.recompute(p)
	}

	e.phase = PhaseBusy
	e.log.WithField("round", e.roundCount).Info("snapshot restored")
	e.schedule(e.cfg.Announce(), e.startTurn)
	e.pump()
	return nil
}

func validateSnapshot(snap *Snapshot) error {
	if snap.Round < 1 {
		return fmt.Errorf("snapshot: bad round %d", snap.Round)
	}
	if len(snap.Players) < 2 {
		return fmt.Errorf("snapshot: need at least two players, got %d", len(snap.Players))
	}
	for i, p := range snap.Players {
		if p == nil || p.ID == uuid.Nil {
			return fmt.Errorf("snapshot: player %d is malformed", i)
		}
	}
	if snap.CurrentIdx < 0 || snap.CurrentIdx >= len(snap.Players) {
		return fmt.Errorf("snapshot: current index %d out of range", snap.CurrentIdx)
	}
	if snap.StartIdx < 0 || snap.StartIdx >= len(snap.Players) {
		return fmt.Errorf("snapshot: start index %d out of range", snap.StartIdx)
	}
	return nil
}
