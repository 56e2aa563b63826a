// internal/game/events_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitloop/internal/models"
)

func TestLandingOnLuckyCellRunsResolver(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.Position = 1
	stackDeck(e, models.NumberCard(9), models.NumberCard(1))

	require.NoError(t, e.Draw(p1.ID))

	assert.Equal(t, LuckyCellA, p1.Position)
	assert.True(t, fe.saw("lucky_cell"))
	// Whatever band the roll hit, control came back to the normal flow:
	// either a choice is pending or someone is ready to act.
	if e.PendingChoice() == nil {
		assert.Equal(t, PhaseAction, e.Phase())
	}
}

func TestBonusSpecialBandKeepsPoolsMatched(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	score := models.ScoreCard(5)
	e.ctx.Deck.Restore([]models.Card{models.NumberCard(2), score}, []models.Card{score})

	e.resolveLuckyA(p1, 0.1)
	e.pump()

	assert.True(t, fe.saw("bonus_special"))
	assert.Contains(t, p1.Hand, score)
	assert.Equal(t, 0, e.ctx.Deck.SpecialsRemaining())
	assert.Equal(t, 1, e.ctx.Deck.Remaining(), "the main-pile twin is gone")
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestBonusSpecialBandSkipsOnEmptySubPool(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	stackDeck(e, models.NumberCard(2))

	e.resolveLuckyA(p1, 0.1)
	e.pump()

	assert.True(t, fe.saw("bonus_skipped"))
	assert.Empty(t, p1.Hand)
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestExtraActionBandKeepsTheTurn(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]

	e.resolveLuckyA(p1, 0.3)
	e.pump()

	assert.True(t, fe.saw("extra_action"))
	assert.Equal(t, p1, e.current(), "the same player acts again")
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestFreeProphecyBandPromptsAndSettles(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]

	e.resolveLuckyA(p1, 0.5)

	req := e.PendingChoice()
	require.NotNil(t, req)
	assert.Equal(t, ChooseProphecy, req.Kind)
	answerChoice(t, e, string(models.GuessBig))

	assert.True(t, fe.saw("prophecy_set"))
	assert.Equal(t, models.GuessBig, p1.Prophecy)
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestCellTrainPaysStakesOnTheNextThreeCells(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.TotalScore = 100
	require.NoError(t, e.ctx.Wagers.AdjustStake(p1, SymbolStar, 20))
	p1.Position = 6 // the train covers 7, 8, 9: bell, star, apple

	e.resolveLuckyB(p1, 0.7)
	e.pump()

	assert.True(t, fe.saw("cell_train"))
	assert.True(t, fe.saw("wager_won"))
	assert.Equal(t, 380, p1.TotalScore, "20 on the star at x15")
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestJackpotBandResolvesTheWholeBoard(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	p1.TotalScore = 100
	require.NoError(t, e.ctx.Wagers.AdjustStake(p1, SymbolBell, 20))

	e.resolveLuckyB(p1, 0.99)
	e.pump()

	assert.True(t, fe.saw("jackpot"))
	// Three bell cells, but the stake pays exactly once and is consumed.
	assert.Equal(t, 280, p1.TotalScore)
	assert.Equal(t, 0, e.ctx.Wagers.Stake(p1.ID, SymbolBell))
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}

func TestHighValueSpecialBandDrawsFromSubPool(t *testing.T) {
	e, players, fe := setupGame(t, 2, nil)
	require.NoError(t, e.Start())
	p1 := players[0]
	mult := models.MultCard(2)
	e.ctx.Deck.Restore([]models.Card{models.NumberCard(4), mult}, []models.Card{mult})

	e.resolveLuckyB(p1, 0.1)
	e.pump()

	assert.True(t, fe.saw("bonus_special"))
	assert.Contains(t, p1.Hand, mult)
	assert.Equal(t, 0, e.ctx.Deck.SpecialsRemaining())
	assert.Equal(t, 1, e.ctx.Deck.Remaining(), "the main-pile twin is gone")
	assert.Equal(t, players[1], e.current())
	assert.Equal(t, PhaseAction, e.Phase())
}
