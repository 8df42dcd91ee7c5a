package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovattry/quintle/internal/game"
)

func Test_Keyboard_unseen_letters_are_empty(t *testing.T) {
	kb := game.NewKeyboard()
	assert.Equal(t, game.TileEmpty, kb.State("q"))
	assert.Equal(t, game.TileEmpty, kb.State("Q"))
}

func Test_Keyboard_upgrades_but_never_downgrades(t *testing.T) {
	kb := game.NewKeyboard()

	// "snake" vs "crane": n is Present, e is Correct.
	kb.Observe(game.Evaluate("snake", "crane"))
	assert.Equal(t, game.TilePresent, kb.State("n"))
	assert.Equal(t, game.TileCorrect, kb.State("e"))
	assert.Equal(t, game.TileAbsent, kb.State("s"))

	// A later guess scoring e as merely Present must not demote the key.
	kb.Observe(game.Evaluate("speed", "crane"))
	assert.Equal(t, game.TileCorrect, kb.State("e"))
}

func Test_Session_keys_fold_the_whole_history(t *testing.T) {
	s := game.NewSession("crane")
	_, err := s.Submit("snake")
	require.NoError(t, err)
	_, err = s.Submit("crane")
	require.NoError(t, err)

	kb := s.Keys()
	assert.Equal(t, game.TileCorrect, kb.State("c"))
	assert.Equal(t, game.TileCorrect, kb.State("n"))
	assert.Equal(t, game.TileAbsent, kb.State("k"))
	assert.Equal(t, game.TileEmpty, kb.State("z"))
}
