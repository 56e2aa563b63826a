// internal/game/deck_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitloop/internal/config"
	"fruitloop/internal/models"
)

func newTestDeck(seed int64) *Deck {
	return NewDeck(config.Default().Deck, rand.New(rand.NewSource(seed)))
}

func TestDeckBuildsConfiguredMultiset(t *testing.T) {
	d := newTestDeck(1)
	// Numbers: one 0, one 1, then v copies of each value 2..13.
	numbers := 2
	for v := 2; v <= 13; v++ {
		numbers += v
	}
	// Specials: 3+3+3 triples, 2+2+2 pairs, nine score cards, one mult.
	specials := 9 + 6 + 9 + 1
	assert.Equal(t, numbers+specials, d.Remaining())
	assert.Equal(t, specials, d.SpecialsRemaining())
}

func TestDrawTopRemovesSpecialTwin(t *testing.T) {
	d := newTestDeck(1)
	freeze := models.SpecialCard(models.KindFreeze)
	d.Restore([]models.Card{freeze}, []models.Card{freeze})

	card, ok := d.DrawTop()
	require.True(t, ok)
	assert.Equal(t, freeze, card)
	assert.Equal(t, 0, d.SpecialsRemaining())
}

func TestDrawNumberSkipsSpecials(t *testing.T) {
	d := newTestDeck(1)
	d.Restore([]models.Card{
		models.NumberCard(5),
		models.SpecialCard(models.KindFreeze),
		models.SpecialCard(models.KindFlash),
	}, nil)

	card, ok := d.DrawNumber()
	require.True(t, ok)
	assert.Equal(t, models.NumberCard(5), card)
	assert.Equal(t, 2, d.Remaining())

	_, ok = d.DrawNumber()
	assert.False(t, ok, "no number card remains")
}

func TestDrawBonusSpecialKeepsPoolsMatched(t *testing.T) {
	d := newTestDeck(1)
	freeze := models.SpecialCard(models.KindFreeze)
	d.Restore([]models.Card{freeze, models.NumberCard(3)}, []models.Card{freeze})

	card, ok := d.DrawBonusSpecial()
	require.True(t, ok)
	assert.Equal(t, freeze, card)
	assert.Equal(t, 1, d.Remaining(), "the main-pile twin is gone")
	assert.Equal(t, 0, d.SpecialsRemaining())
}

func TestDrawBonusSpecialFiltersKinds(t *testing.T) {
	d := newTestDeck(1)
	freeze := models.SpecialCard(models.KindFreeze)
	flash := models.SpecialCard(models.KindFlash)
	d.Restore([]models.Card{freeze, flash}, []models.Card{freeze, flash})

	card, ok := d.DrawBonusSpecial(models.KindFlash)
	require.True(t, ok)
	assert.Equal(t, flash, card)

	_, ok = d.DrawBonusSpecial(models.KindDare)
	assert.False(t, ok, "no dare in the sub-pool")
}

func TestReshuffleExcludesHeldCards(t *testing.T) {
	d := newTestDeck(1)
	total := d.Remaining()
	holder := &models.Player{Hand: []models.Card{
		models.NumberCard(13),
		models.SpecialCard(models.KindFreeze),
	}}

	excluded := d.Reshuffle([]*models.Player{holder})

	thirteens, freezes := 0, 0
	for _, c := range d.Cards() {
		if c == models.NumberCard(13) {
			thirteens++
		}
		if c.Kind == models.KindFreeze {
			freezes++
		}
	}
	assert.Equal(t, 0, thirteens, "held values leave the pile entirely")
	assert.Equal(t, 2, freezes, "held specials lose one twin")
	specialFreezes := 0
	for _, c := range d.SpecialCards() {
		if c.Kind == models.KindFreeze {
			specialFreezes++
		}
	}
	assert.Equal(t, 2, specialFreezes, "sub-pool mirrors the held special")

	// The 12 surplus thirteens went to the exclusion set; pile, hand and
	// exclusions still add up to the configured multiset.
	assert.Len(t, excluded, 12)
	for _, c := range excluded {
		assert.Equal(t, models.NumberCard(13), c)
	}
	assert.Equal(t, total, d.Remaining()+len(holder.Hand)+len(excluded))
}

func TestReshuffleLeavesNoDrawableDuplicate(t *testing.T) {
	d := newTestDeck(2)
	holder := &models.Player{Hand: []models.Card{models.NumberCard(5)}}

	excluded := d.Reshuffle([]*models.Player{holder})

	for _, c := range d.Cards() {
		assert.NotEqual(t, models.NumberCard(5), c,
			"a value in hand must not be drawable after the reshuffle")
	}
	assert.Len(t, excluded, 4, "the four surplus fives are tracked, not lost")
}

func TestReshuffleRestoresFullMultisetWithEmptyHands(t *testing.T) {
	d := newTestDeck(1)
	total := d.Remaining()
	for i := 0; i < 10; i++ {
		_, ok := d.DrawTop()
		require.True(t, ok)
	}
	d.Reshuffle(nil)
	assert.Equal(t, total, d.Remaining())
}
