// internal/game/deck.go
package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"fruitloop/internal/config"
	"fruitloop/internal/models"
)

// Deck owns the shuffled draw pile plus the special-only sub-pool used for
// lucky-cell bonus draws. The two stay in 1:1 correspondence for special
// cards: consuming a special from either side removes its twin from the
// other, so the configured scarcity caps hold across hands and deck.
type Deck struct {
	main     []models.Card
	specials []models.Card

	cfg config.DeckConfig
	rng *rand.Rand
}

// NewDeck builds and shuffles a fresh deck from the configured multiset.
func NewDeck(cfg config.DeckConfig, rng *rand.Rand) *Deck {
	d := &Deck{cfg: cfg, rng: rng}
	d.build()
	d.shuffle()
	return d
}

// cardFromKey parses a config special key ("freeze", "score_5", "mult_2")
// into a card value. This is the only place string card tags survive; the
// rest of the engine works on the tagged union.
func cardFromKey(key string) (models.Card, error) {
	switch key {
	case "freeze":
		return models.SpecialCard(models.KindFreeze), nil
	case "second_chance":
		return models.SpecialCard(models.KindSecondChance), nil
	case "flip_3":
		return models.SpecialCard(models.KindFlip3), nil
	case "flash":
		return models.SpecialCard(models.KindFlash), nil
	case "dare":
		return models.SpecialCard(models.KindDare), nil
	case "feast":
		return models.SpecialCard(models.KindFeast), nil
	}
	if n, ok := strings.CutPrefix(key, "score_"); ok {
		v, err := strconv.Atoi(n)
		if err != nil {
			return models.Card{}, fmt.Errorf("deck: bad special key %q", key)
		}
		return models.ScoreCard(v), nil
	}
	if m, ok := strings.CutPrefix(key, "mult_"); ok {
		v, err := strconv.Atoi(m)
		if err != nil {
			return models.Card{}, fmt.Errorf("deck: bad special key %q", key)
		}
		return models.MultCard(v), nil
	}
	return models.Card{}, fmt.Errorf("deck: unknown special key %q", key)
}

// build fills both pools from configuration. Unknown special keys are
// skipped; the config validator keeps the interesting failure modes out.
func (d *Deck) build() {
	d.specials = d.specials[:0]
	for key, count := range d.cfg.SpecialCounts {
		card, err := cardFromKey(key)
		if err != nil {
			continue
		}
		for i := 0; i < count; i++ {
			d.specials = append(d.specials, card)
		}
	}
	d.main = d.main[:0]
	for value, count := range d.cfg.NumberCounts {
		for i := 0; i < count; i++ {
			d.main = append(d.main, models.NumberCard(value))
		}
	}
	d.main = append(d.main, d.specials...)
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.main), func(i, j int) {
		d.main[i], d.main[j] = d.main[j], d.main[i]
	})
}

// Remaining returns the size of the draw pile.
func (d *Deck) Remaining() int { return len(d.main) }

// SpecialsRemaining returns the size of the bonus sub-pool.
func (d *Deck) SpecialsRemaining() int { return len(d.specials) }

// DrawTop pops the top card of the draw pile. Specials drawn this way lose
// their twin in the sub-pool.
func (d *Deck) DrawTop() (models.Card, bool) {
	if len(d.main) == 0 {
		return models.Card{}, false
	}
	card := d.main[len(d.main)-1]
	d.main = d.main[:len(d.main)-1]
	if card.IsSpecial() {
		d.dropSpecialTwin(card)
	}
	return card, true
}

// DrawNumber scans from the top of the pile for the first numeric card and
// removes it. Returns false when no number card remains; the caller decides
// whether to reshuffle and retry.
func (d *Deck) DrawNumber() (models.Card, bool) {
	for i := len(d.main) - 1; i >= 0; i-- {
		if d.main[i].IsNumber() {
			card := d.main[i]
			d.main = append(d.main[:i], d.main[i+1:]...)
			return card, true
		}
	}
	return models.Card{}, false
}

// DrawBonusSpecial takes a random card from the special sub-pool, removing
// its twin from the main pile so the pools stay matched. When kinds is
// non-empty only those kinds are considered.
func (d *Deck) DrawBonusSpecial(kinds ...models.CardKind) (models.Card, bool) {
	var eligible []int
	for i, c := range d.specials {
		if len(kinds) == 0 {
			eligible = append(eligible, i)
			continue
		}
		for _, k := range kinds {
			if c.Kind == k {
				eligible = append(eligible, i)
				break
			}
		}
	}
	if len(eligible) == 0 {
		return models.Card{}, false
	}
	idx := eligible[d.rng.Intn(len(eligible))]
	card := d.specials[idx]
	d.specials = append(d.specials[:idx], d.specials[idx+1:]...)
	d.dropMainTwin(card)
	return card, true
}

func (d *Deck) dropSpecialTwin(card models.Card) {
	for i, c := range d.specials {
		if c.Twin(card) {
			d.specials = append(d.specials[:i], d.specials[i+1:]...)
			return
		}
	}
}

func (d *Deck) dropMainTwin(card models.Card) {
	for i, c := range d.main {
		if c.Twin(card) {
			d.main = append(d.main[:i], d.main[i+1:]...)
			return
		}
	}
}

// Reshuffle rebuilds the full configured multiset and then strips it of
// everything the live hands make unsafe: every copy of each numeric value
// held in any hand leaves the pile, so a fresh shuffle can never offer an
// immediately-busting duplicate, and each held special loses one twin in
// both pools. The number copies removed beyond the held ones are returned
// so the caller can keep its discard tracking balanced.
func (d *Deck) Reshuffle(players []*models.Player) []models.Card {
	d.build()
	held := make(map[int]int)
	for _, p := range players {
		for _, c := range p.Hand {
			if c.IsNumber() {
				held[c.Value]++
				continue
			}
			d.dropMainTwin(c)
			d.dropSpecialTwin(c)
		}
	}
	var excluded []models.Card
	for value, count := range held {
		removed := d.removeNumberValue(value)
		for i := count; i < removed; i++ {
			excluded = append(excluded, models.NumberCard(value))
		}
	}
	d.shuffle()
	return excluded
}

// removeNumberValue strips every copy of the numeric value from the pile
// and reports how many left.
func (d *Deck) removeNumberValue(value int) int {
	removed := 0
	kept := d.main[:0]
	for _, c := range d.main {
		if c.IsNumber() && c.Value == value {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	d.main = kept
	return removed
}

// Cards returns a copy of the draw pile, bottom first. Used by snapshots and
// conservation checks.
func (d *Deck) Cards() []models.Card {
	out := make([]models.Card, len(d.main))
	copy(out, d.main)
	return out
}

// SpecialCards returns a copy of the bonus sub-pool.
func (d *Deck) SpecialCards() []models.Card {
	out := make([]models.Card, len(d.specials))
	copy(out, d.specials)
	return out
}

// Restore replaces both pools, e.g. when loading a snapshot.
func (d *Deck) Restore(main, specials []models.Card) {
	d.main = append(d.main[:0], main...)
	d.specials = append(d.specials[:0], specials...)
	if len(d.main) == 0 {
		d.build()
		d.shuffle()
	}
}
