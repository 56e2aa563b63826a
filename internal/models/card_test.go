// internal/models/card_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardStrings(t *testing.T) {
	assert.Equal(t, "7", NumberCard(7).String())
	assert.Equal(t, "score_5", ScoreCard(5).String())
	assert.Equal(t, "mult_2", MultCard(2).String())
	assert.Equal(t, "second_chance", SpecialCard(KindSecondChance).String())
}

func TestTwinMatchesKindAndPayload(t *testing.T) {
	assert.True(t, ScoreCard(5).Twin(ScoreCard(5)))
	assert.False(t, ScoreCard(5).Twin(ScoreCard(6)))
	assert.True(t, SpecialCard(KindFreeze).Twin(SpecialCard(KindFreeze)))
	assert.False(t, NumberCard(5).Twin(ScoreCard(5)))
}

func TestNumberAndSpecialPredicates(t *testing.T) {
	assert.True(t, NumberCard(0).IsNumber())
	assert.False(t, NumberCard(0).IsSpecial())
	assert.True(t, MultCard(2).IsSpecial())
	assert.False(t, MultCard(2).IsNumber())
}
