// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files
//     or fall back to the embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply RandomAnswer, IsAllowed, IsAnswer, Answers and Stats.
//
// Word lists:
//   - "answers": canonical solutions (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// File formats:
//   - Plain text, one word per line (# comments skipped).
//   - A JSON array of strings when the file name ends in .json, the shape
//     the original dictionary dump uses.
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.json
//
// Initialization behavior (Init):
//   1. Both vars set: answers from the first file, allowed from the second.
//   2. Only WORDS_ALLOWED_FILE set: that list serves as both.
//   3. Neither set: embedded defaults from the assets package.
//
// Lists are normalized to lowercase and filtered to valid 5-letter words.
// Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/ovattry/quintle/assets"
)

var (
	initOnce   sync.Once
	answers    []string            // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the answers list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var ansList, allowList []string

		answersPath := os.Getenv("WORDS_ANSWERS_FILE")
		allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

		switch {
		case answersPath != "" && allowedPath != "":
			var err error
			ansList, err = ReadWordFile(answersPath)
			if err != nil {
				initialErr = err
				return
			}
			allowList, err = ReadWordFile(allowedPath)
			if err != nil {
				initialErr = err
				return
			}

		case answersPath == "" && allowedPath != "":
			var err error
			allowList, err = ReadWordFile(allowedPath)
			if err != nil {
				initialErr = err
				return
			}
			ansList = allowList

		default:
			var err error
			ansList, err = assets.AnswersList()
			if err != nil {
				initialErr = err
				return
			}
			allowList, err = assets.AllowedList()
			if err != nil {
				initialErr = err
				return
			}
		}

		answers = ansList
		answersSet = toSet(ansList)

		// Answers are always valid guesses.
		allowedSet = toSet(ansList)
		for _, w := range allowList {
			allowedSet[w] = struct{}{}
		}

		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
		}
	})
	return initialErr
}

// ReadWordFile loads a word list from a file. Files ending in .json are
// decoded as a JSON array of strings; anything else is read line by line.
// Entries are lowercased, trimmed and filtered to valid 5-letter words.
func ReadWordFile(path string) ([]string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return readJSONList(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// readJSONList decodes a JSON array of words.
func readJSONList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if w, ok := normalize(s); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// normalize lowercases and trims a candidate word, reporting whether it is
// a valid 5-letter alphabetic entry. Comment lines are rejected.
func normalize(s string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(s))
	if len(w) != 5 || strings.HasPrefix(w, "#") {
		return "", false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	return w, true
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Answers returns the canonical answer list (all lowercase).
func Answers() []string {
	return answers
}

// RandomAnswer returns a cryptographically random answer from the list.
// Falls back to "crane" if the lists were never loaded.
func RandomAnswer() string {
	if len(answers) == 0 {
		return "crane"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	return answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := answersSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount, allowedCount int) {
	return len(answers), len(allowedSet)
}
