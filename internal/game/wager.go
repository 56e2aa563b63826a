// internal/game/wager.go
package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"fruitloop/internal/config"
	"fruitloop/internal/models"
)

// WagerLedger tracks the per-round symbol odds and every player's open
// stakes. Stakes are deducted from the total score the moment they are
// placed and refunded on withdrawal; a winning landing pays stake times
// the odds without returning the stake itself.
type WagerLedger struct {
	odds   map[Symbol]int
	stakes map[uuid.UUID]map[Symbol]int

	cfg *config.Config
	rng *rand.Rand
}

func NewWagerLedger(cfg *config.Config, rng *rand.Rand) *WagerLedger {
	w := &WagerLedger{cfg: cfg, rng: rng}
	w.ResetRound()
	return w
}

// ResetRound clears all stakes and regenerates the odds table from the
// configured base multipliers.
func (w *WagerLedger) ResetRound() {
	w.stakes = make(map[uuid.UUID]map[Symbol]int)
	w.odds = make(map[Symbol]int, len(Symbols))
	for _, sym := range Symbols {
		if mult, ok := w.cfg.Odds[string(sym)]; ok {
			w.odds[sym] = mult
		}
	}
}

// Odds returns the payout multiplier for the symbol this round.
func (w *WagerLedger) Odds(sym Symbol) int { return w.odds[sym] }

// OddsTable returns a copy of the current odds, for state reflection.
func (w *WagerLedger) OddsTable() map[Symbol]int {
	out := make(map[Symbol]int, len(w.odds))
	for s, m := range w.odds {
		out[s] = m
	}
	return out
}

// Stake returns the player's open stake on the symbol.
func (w *WagerLedger) Stake(id uuid.UUID, sym Symbol) int {
	return w.stakes[id][sym]
}

// Stakes returns a copy of the player's open bets.
func (w *WagerLedger) Stakes(id uuid.UUID) map[Symbol]int {
	out := make(map[Symbol]int)
	for s, amt := range w.stakes[id] {
		if amt > 0 {
			out[s] = amt
		}
	}
	return out
}

// AdjustStake moves the player's stake on the symbol by delta. Positive
// deltas deduct from the total score immediately; negative deltas refund.
// The stake can never go negative and a raise never exceeds the player's
// remaining total.
func (w *WagerLedger) AdjustStake(p *models.Player, sym Symbol, delta int) error {
	if _, ok := w.odds[sym]; !ok {
		return fmt.Errorf("wager: unknown symbol %q", sym)
	}
	current := w.stakes[p.ID][sym]
	next := current + delta
	if next < 0 {
		return fmt.Errorf("wager: stake on %s cannot go below zero", sym)
	}
	if delta > p.TotalScore {
		return fmt.Errorf("wager: stake exceeds available score")
	}
	if w.stakes[p.ID] == nil {
		w.stakes[p.ID] = make(map[Symbol]int)
	}
	p.TotalScore -= delta
	w.stakes[p.ID][sym] = next
	return nil
}

// ResolveLanding pays out every open stake on the landed cell's symbol and
// closes those stakes. Lucky cells carry no symbol and resolve nothing.
// Returns the payout per player id.
func (w *WagerLedger) ResolveLanding(players []*models.Player, cell int) map[uuid.UUID]int {
	return w.resolveSymbol(players, SymbolAt(cell))
}

func (w *WagerLedger) resolveSymbol(players []*models.Player, sym Symbol) map[uuid.UUID]int {
	payouts := make(map[uuid.UUID]int)
	if sym == SymbolNone {
		return payouts
	}
	mult := w.odds[sym]
	for _, p := range players {
		stake := w.stakes[p.ID][sym]
		if stake == 0 {
			continue
		}
		win := stake * mult
		p.TotalScore += win
		payouts[p.ID] = win
		delete(w.stakes[p.ID], sym)
	}
	return payouts
}

// ResolveCells resolves several cells in one pass, skipping lucky cells and
// deduplicating symbols so a chain never pays the same stake twice.
func (w *WagerLedger) ResolveCells(players []*models.Player, cells []int) map[uuid.UUID]int {
	total := make(map[uuid.UUID]int)
	seen := make(map[Symbol]bool)
	for _, cell := range cells {
		sym := SymbolAt(cell)
		if sym == SymbolNone || seen[sym] {
			continue
		}
		seen[sym] = true
		for id, win := range w.resolveSymbol(players, sym) {
			total[id] += win
		}
	}
	return total
}

// PlaceAIStakes wagers for a computer player: up to MaxStakeBets random
// symbols, each staked at minStake increments capped by the configured
// fraction of the player's total. Players too poor to meet the minimum
// stake place nothing.
func (w *WagerLedger) PlaceAIStakes(p *models.Player) {
	budget := int(float64(p.TotalScore) * w.cfg.AI.StakeFraction)
	min := w.cfg.Rules.MinStake
	if budget < min || w.cfg.AI.MaxStakeBets < 1 {
		return
	}
	syms := make([]Symbol, 0, len(w.odds))
	for s := range w.odds {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	w.rng.Shuffle(len(syms), func(i, j int) { syms[i], syms[j] = syms[j], syms[i] })

	bets := 1 + w.rng.Intn(w.cfg.AI.MaxStakeBets)
	for _, sym := range syms {
		if bets == 0 || budget < min {
			break
		}
		stake := min * (1 + w.rng.Intn(budget/min))
		if stake > budget {
			stake = budget
		}
		if err := w.AdjustStake(p, sym, stake); err != nil {
			continue
		}
		budget -= stake
		bets--
	}
}

// SetOdds replaces the odds table, e.g. when loading a snapshot.
func (w *WagerLedger) SetOdds(odds map[Symbol]int) {
	w.odds = make(map[Symbol]int, len(odds))
	for s, m := range odds {
		w.odds[s] = m
	}
}

// RestoreStakes replaces every open stake, e.g. when loading a snapshot.
// Scores are not touched; the snapshot already reflects the deductions.
func (w *WagerLedger) RestoreStakes(stakes map[uuid.UUID]map[Symbol]int) {
	w.stakes = make(map[uuid.UUID]map[Symbol]int, len(stakes))
	for id, bySym := range stakes {
		inner := make(map[Symbol]int, len(bySym))
		for s, amt := range bySym {
			if amt > 0 {
				inner[s] = amt
			}
		}
		w.stakes[id] = inner
	}
}

// AllStakes returns a deep copy of every open stake, for snapshots.
func (w *WagerLedger) AllStakes() map[uuid.UUID]map[Symbol]int {
	out := make(map[uuid.UUID]map[Symbol]int, len(w.stakes))
	for id := range w.stakes {
		out[id] = w.Stakes(id)
	}
	return out
}

// OpenStakeTotal sums every open stake across all players. Used by the
// conservation checks.
func (w *WagerLedger) OpenStakeTotal() int {
	sum := 0
	for _, bySym := range w.stakes {
		for _, amt := range bySym {
			sum += amt
		}
	}
	return sum
}
