// internal/models/player.go
package models

import "github.com/google/uuid"

// PlayerState tracks where a player is in the current round's lifecycle.
type PlayerState string

const (
	StateWaiting PlayerState = "waiting" // has turns left this round
	StatePlaying PlayerState = "playing" // currently in the turn rotation
	StateDone    PlayerState = "done"    // gave up; round score banks at round end
	StateBust    PlayerState = "bust"    // busted; round score is forfeit
	StateFrozen  PlayerState = "frozen"  // skipped once, then back to waiting
)

// ProphecyGuess is the size-class prediction for the next numeric draw.
type ProphecyGuess string

const (
	GuessNone  ProphecyGuess = ""
	GuessSmall ProphecyGuess = "small" // 0..6
	GuessBig   ProphecyGuess = "big"   // 7..13
)

type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	IsAI bool      `json:"isAI"`

	TotalScore int `json:"totalScore"`
	RoundScore int `json:"roundScore"`
	Position   int `json:"position"` // board cell 1..24

	// RoundBonus collects flat rewards (duel wins, prophecy hits) that the
	// round-score recompute folds in on top of the hand value. Forfeited on
	// bust along with the rest of the round score.
	RoundBonus int `json:"-"`

	Hand  []Card     `json:"hand"`
	Items []ItemKind `json:"items"`

	State PlayerState `json:"state"`

	// One-round status flags. Never persisted as authoritative: restore
	// force-resets them.
	Protected bool          `json:"-"` // one-shot bust protection
	TaxFree   bool          `json:"-"` // tolls waived for the rest of the round
	Prophecy  ProphecyGuess `json:"-"` // pending size-class guess
	ItemDone  bool          `json:"-"` // item decision already taken this round

	// UpgradeBuys drives the dynamic upgrade price in the shop. Survives
	// rounds within a game.
	UpgradeBuys int `json:"upgradeBuys"`
}

// NumberCount returns how many numeric cards the player holds.
func (p *Player) NumberCount() int {
	n := 0
	for _, c := range p.Hand {
		if c.IsNumber() {
			n++
		}
	}
	return n
}

// HoldsNumber reports whether the hand already contains the numeric value v,
// ignoring the entry at skipIdx (pass -1 to scan the whole hand).
func (p *Player) HoldsNumber(v, skipIdx int) bool {
	for i, c := range p.Hand {
		if i == skipIdx {
			continue
		}
		if c.IsNumber() && c.Value == v {
			return true
		}
	}
	return false
}

// IndexOfSpecial returns the index of the first card of the given special
// kind, or -1.
func (p *Player) IndexOfSpecial(k CardKind) int {
	for i, c := range p.Hand {
		if c.Kind == k {
			return i
		}
	}
	return -1
}

// RemoveCard removes and returns the hand entry at i.
func (p *Player) RemoveCard(i int) Card {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return c
}

// IndexOfItem returns the inventory index of the first item of kind k, or -1.
func (p *Player) IndexOfItem(k ItemKind) int {
	for i, it := range p.Items {
		if it == k {
			return i
		}
	}
	return -1
}

// Terminal reports whether the player takes no further turns this round.
func (p *Player) Terminal() bool {
	return p.State == StateBust || p.State == StateDone
}

// ResetRound clears the per-round portion of the player: hand, round score
// and one-round flags. Total score, position, items and the upgrade counter
// persist across rounds.
func (p *Player) ResetRound() {
	p.State = StateWaiting
	p.RoundScore = 0
	p.RoundBonus = 0
	p.Hand = nil
	p.Protected = false
	p.TaxFree = false
	p.Prophecy = GuessNone
	p.ItemDone = false
}
