// internal/game/evaluate.go
//
// Guess scoring. Pure function, no state.

package game

// Evaluate scores guess against solution with the two-pass,
// frequency-budgeted algorithm.
//
// Pass 1:
//   - Mark exact positions Correct.
//   - Every other solution letter feeds a per-letter budget.
//
// Pass 2 (left to right over the unresolved positions):
//   - If the guessed letter still has budget, mark Present and decrement.
//   - Otherwise mark Absent.
//
// A letter occurring k times in the solution is credited at most k times
// across the guess, exact matches consume budget before positional ones,
// and when guess duplicates outnumber remaining solution occurrences the
// earliest index wins Present.
//
// Inputs must be valid Words (see ParseWord); Evaluate itself has no
// failure path.
func Evaluate(guess, solution Word) GuessResult {
	var res GuessResult
	var budget [26]int

	for i := 0; i < WordLength; i++ {
		res[i].Letter = string(guess[i])
		if guess[i] == solution[i] {
			res[i].State = TileCorrect
		} else {
			budget[solution[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i].State == TileCorrect {
			continue
		}
		j := guess[i] - 'a'
		if budget[j] > 0 {
			res[i].State = TilePresent
			budget[j]--
		} else {
			res[i].State = TileAbsent
		}
	}
	return res
}
