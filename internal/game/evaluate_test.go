package game_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovattry/quintle/internal/game"
)

// states extracts just the TileStates from a result for compact assertions.
func states(r game.GuessResult) [game.WordLength]game.TileState {
	var out [game.WordLength]game.TileState
	for i, t := range r {
		out[i] = t.State
	}
	return out
}

func Test_Evaluate_guessing_the_solution_scores_all_correct(t *testing.T) {
	for _, w := range []game.Word{"crane", "speed", "eerie", "abide"} {
		res := game.Evaluate(w, w)
		assert.True(t, res.AllCorrect(), "solution %q", w)
	}
}

func Test_Evaluate_disjoint_letters_score_all_absent(t *testing.T) {
	res := game.Evaluate("crane", "doubt")
	for i, tile := range res {
		assert.Equal(t, game.TileAbsent, tile.State, "index %d", i)
	}
}

func Test_Evaluate_mixed_guess(t *testing.T) {
	// Classic mixed case: two exact matches, one misplaced letter.
	res := game.Evaluate("snake", "crane")
	assert.Equal(t, [game.WordLength]game.TileState{
		game.TileAbsent, game.TilePresent, game.TileCorrect, game.TileAbsent, game.TileCorrect,
	}, states(res))
}

func Test_Evaluate_duplicate_letters(t *testing.T) {
	tests := []struct {
		name            string
		guess, solution game.Word
		want            [game.WordLength]game.TileState
	}{
		{
			// Solution holds two E's and one S; both guessed E's and the
			// lone S are credited, R and A are not in the solution.
			name:  "guess erase against speed",
			guess: "erase", solution: "speed",
			want: [game.WordLength]game.TileState{
				game.TilePresent, game.TileAbsent, game.TileAbsent, game.TilePresent, game.TilePresent,
			},
		},
		{
			// Mirror case: both E's of SPEED fit ERASE's two E's, the D
			// has no budget left to draw from.
			name:  "guess speed against erase",
			guess: "speed", solution: "erase",
			want: [game.WordLength]game.TileState{
				game.TilePresent, game.TileAbsent, game.TilePresent, game.TilePresent, game.TileAbsent,
			},
		},
		{
			// One E in the solution, already consumed by the exact match
			// at index 4; the earlier E's get no credit.
			name:  "guess eerie against abide",
			guess: "eerie", solution: "abide",
			want: [game.WordLength]game.TileState{
				game.TileAbsent, game.TileAbsent, game.TileAbsent, game.TilePresent, game.TileCorrect,
			},
		},
		{
			// Three guessed S's against one S in the solution, and that S
			// is consumed by the exact match at index 3; the remaining
			// S's have no budget to draw from.
			name:  "guess sassy against raise",
			guess: "sassy", solution: "raise",
			want: [game.WordLength]game.TileState{
				game.TileAbsent, game.TileCorrect, game.TileAbsent, game.TileCorrect, game.TileAbsent,
			},
		},
		{
			// One non-exact S in the solution against three misplaced
			// guessed S's: the earliest index wins Present, the later
			// ones go Absent.
			name:  "guess sassy against using",
			guess: "sassy", solution: "using",
			want: [game.WordLength]game.TileState{
				game.TilePresent, game.TileAbsent, game.TileAbsent, game.TileAbsent, game.TileAbsent,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, states(game.Evaluate(tc.guess, tc.solution)))
		})
	}
}

func Test_Evaluate_letters_align_with_the_guess(t *testing.T) {
	res := game.Evaluate("snake", "crane")
	for i, tile := range res {
		assert.Equal(t, string("snake"[i]), tile.Letter, "index %d", i)
	}
}

func Test_Evaluate_letter_budget_invariant(t *testing.T) {
	// For any letter, Correct+Present credits are exactly
	// min(count in guess, count in solution): exact matches consume one
	// occurrence each, and the second pass hands out Present only while
	// the remaining count lasts.
	pairs := []struct{ guess, solution game.Word }{
		{"eerie", "speed"},
		{"speed", "eerie"},
		{"llama", "hello"},
		{"hello", "llama"},
		{"sassy", "brass"},
		{"geese", "eagle"},
	}

	for _, p := range pairs {
		res := game.Evaluate(p.guess, p.solution)
		for c := byte('a'); c <= 'z'; c++ {
			credited := 0
			for _, tile := range res {
				if tile.Letter == string(c) && tile.State >= game.TilePresent {
					credited++
				}
			}
			inGuess := strings.Count(string(p.guess), string(c))
			inSolution := strings.Count(string(p.solution), string(c))
			require.Equal(t, min(inGuess, inSolution), credited,
				"letter %q mis-credited for guess %q vs %q", string(c), p.guess, p.solution)
		}
	}
}

func Test_Evaluate_is_deterministic(t *testing.T) {
	a := game.Evaluate("sassy", "raise")
	b := game.Evaluate("sassy", "raise")
	assert.Equal(t, a, b)
}
